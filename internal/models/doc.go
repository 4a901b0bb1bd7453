// Package models defines the domain models for the sharehouse ledger.
//
// # Entities
//
//   - Person: identity anchor for every money relation
//   - Item: catalog of purchasable things; the default cost is advisory
//   - DebtOrigin: the purchasing event that gave rise to a liability
//   - DebtMapping: the liability itself, a directed amount tied to one origin
//   - HouseholdNeed: a planned shared purchase, tracked until someone buys it
//   - Credential: a named secret kept in the household vault
//
// # Settlement semantics
//
// Debts and needs settle differently on purpose. A settled debt is deleted
// from the mapping table; a purchased need keeps its row with the purchased
// flag set, so past needs remain reportable.
//
// # Design principles
//
//  1. Plain structs, no behavior beyond trivial accessors
//  2. Integer ids assigned by the store, monotonically, never reused while referenced
//  3. Relationships are id fields, not pointers, to avoid circular references
//  4. Aggregation views (PersonTotal, DebtDetail, NeedStatus) are read-only
//     projections produced by the store's join queries
package models
