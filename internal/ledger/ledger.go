// Package ledger composes storage writes into the household's higher-level
// actions and exposes the derived read views the reporting layer consumes.
//
// Every operation is a plain synchronous call on an injected storage.Store.
// Referential checks happen here, not in the database: the store runs with
// foreign key enforcement off so that entity deletes stay unguarded.
package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/okatsu/sharehouse/internal/metrics"
	"github.com/okatsu/sharehouse/internal/models"
	"github.com/okatsu/sharehouse/internal/storage"
)

// Ledger implements the household's mutation and query surface.
type Ledger struct {
	store   storage.Store
	metrics *metrics.Metrics

	// retainOriginHistory controls whether SettleDebt keeps the origin row
	// behind for history. When false the origin is removed with its mapping.
	retainOriginHistory bool
}

// Options configures a Ledger.
type Options struct {
	// RetainOriginHistory keeps DebtOrigin rows after settlement when true.
	RetainOriginHistory bool

	// Metrics is optional; nil disables instrumentation.
	Metrics *metrics.Metrics
}

// New creates a Ledger on top of the given storage backend.
func New(store storage.Store, opts Options) *Ledger {
	return &Ledger{
		store:               store,
		metrics:             opts.Metrics,
		retainOriginHistory: opts.RetainOriginHistory,
	}
}

// NameSupplier produces an item name on demand, typically by prompting.
type NameSupplier func() (string, error)

// CostSupplier produces an item cost on demand, typically by prompting.
type CostSupplier func() (float64, error)

// RecordDebt creates the origin event and its liability as one atomic pair.
// It fails with a ValidationError if the item, debtor or creditor does not
// exist, if the amount is not positive, or if debtor and creditor are the
// same person; on failure neither row becomes visible.
func (l *Ledger) RecordDebt(ctx context.Context, itemID, debtorID, creditorID int64, amount float64, date string) (*models.DebtMapping, error) {
	if amount <= 0 {
		l.metrics.RecordOp("record_debt", metrics.OutcomeValidation)
		return nil, validationErr("amount", "must be positive, got %v", amount)
	}
	if debtorID == creditorID {
		l.metrics.RecordOp("record_debt", metrics.OutcomeValidation)
		return nil, validationErr("creditor", "debtor and creditor are the same person (%d)", debtorID)
	}

	if err := l.requireItem(ctx, itemID); err != nil {
		l.metrics.RecordOp("record_debt", metrics.OutcomeValidation)
		return nil, err
	}
	if err := l.requirePerson(ctx, "debtor", debtorID); err != nil {
		l.metrics.RecordOp("record_debt", metrics.OutcomeValidation)
		return nil, err
	}
	if err := l.requirePerson(ctx, "creditor", creditorID); err != nil {
		l.metrics.RecordOp("record_debt", metrics.OutcomeValidation)
		return nil, err
	}

	origin := &models.DebtOrigin{
		ItemID:       itemID,
		PurchaseDate: date,
		PurchasedBy:  debtorID,
	}
	mapping := &models.DebtMapping{
		OwedBy: debtorID,
		OwedTo: creditorID,
		Amount: amount,
	}

	if err := l.store.CreateDebt(ctx, origin, mapping); err != nil {
		l.metrics.RecordOp("record_debt", metrics.OutcomeError)
		return nil, fmt.Errorf("record debt: %w", err)
	}

	l.metrics.RecordOp("record_debt", metrics.OutcomeOK)
	slog.Info("Debt recorded",
		"origin_id", origin.ID,
		"item_id", itemID,
		"owed_by", debtorID,
		"owed_to", creditorID,
		"amount", amount,
	)

	return mapping, nil
}

// SettleDebt deletes the liability rows keyed by the origin id. A miss is
// not an error: it reports found=false and is logged as a warning, matching
// the permissive settle-twice behavior callers rely on. Whether the origin
// row survives depends on the retain-origin-history option.
func (l *Ledger) SettleDebt(ctx context.Context, originID int64) (bool, error) {
	found, err := l.store.DeleteDebt(ctx, originID, l.retainOriginHistory)
	if err != nil {
		l.metrics.RecordOp("settle_debt", metrics.OutcomeError)
		return false, fmt.Errorf("settle debt: %w", err)
	}

	if !found {
		l.metrics.RecordOp("settle_debt", metrics.OutcomeNotFound)
		slog.Warn("SettleDebt matched no liability", "origin_id", originID)
		return false, nil
	}

	l.metrics.RecordOp("settle_debt", metrics.OutcomeOK)
	slog.Info("Debt settled", "origin_id", originID, "origin_retained", l.retainOriginHistory)
	return true, nil
}

// RecordHouseholdNeed inserts a planned purchase. It fails with a
// ValidationError if the item does not exist or the budget is negative.
// AssignedTo and desiredDate may be zero-valued for "none".
func (l *Ledger) RecordHouseholdNeed(ctx context.Context, itemID int64, budget float64, assignedTo int64, desiredDate string) (*models.HouseholdNeed, error) {
	if budget < 0 {
		l.metrics.RecordOp("record_need", metrics.OutcomeValidation)
		return nil, validationErr("budget", "must not be negative, got %v", budget)
	}
	if err := l.requireItem(ctx, itemID); err != nil {
		l.metrics.RecordOp("record_need", metrics.OutcomeValidation)
		return nil, err
	}
	if assignedTo != 0 {
		if err := l.requirePerson(ctx, "assigned person", assignedTo); err != nil {
			l.metrics.RecordOp("record_need", metrics.OutcomeValidation)
			return nil, err
		}
	}

	need := &models.HouseholdNeed{
		ItemID:      itemID,
		Budget:      budget,
		AssignedTo:  assignedTo,
		DesiredDate: desiredDate,
	}
	if err := l.store.CreateNeed(ctx, need); err != nil {
		l.metrics.RecordOp("record_need", metrics.OutcomeError)
		return nil, fmt.Errorf("record household need: %w", err)
	}

	l.metrics.RecordOp("record_need", metrics.OutcomeOK)
	slog.Info("Household need recorded", "need_id", need.ID, "item_id", itemID, "budget", budget)
	return need, nil
}

// MarkNeedPurchased flips the purchased flag on the matching need. The row
// is retained for history. A miss reports found=false, logged as a warning.
func (l *Ledger) MarkNeedPurchased(ctx context.Context, needID int64) (bool, error) {
	found, err := l.store.MarkNeedPurchased(ctx, needID)
	if err != nil {
		l.metrics.RecordOp("mark_need_purchased", metrics.OutcomeError)
		return false, fmt.Errorf("mark need purchased: %w", err)
	}

	if !found {
		l.metrics.RecordOp("mark_need_purchased", metrics.OutcomeNotFound)
		slog.Warn("MarkNeedPurchased matched no need", "need_id", needID)
		return false, nil
	}

	l.metrics.RecordOp("mark_need_purchased", metrics.OutcomeOK)
	slog.Info("Household need purchased", "need_id", needID)
	return true, nil
}

// ResolveOrCreateItem selects the existing item with the candidate id, or,
// when no such item exists, prompts the suppliers for a name and cost,
// inserts a new item and returns it. Selection is an explicit lookup by id;
// it does not depend on ids being contiguous or on insertion order.
func (l *Ledger) ResolveOrCreateItem(ctx context.Context, candidateID int64, name NameSupplier, cost CostSupplier) (*models.Item, error) {
	existing, err := l.store.GetItem(ctx, candidateID)
	if err != nil {
		l.metrics.RecordOp("resolve_item", metrics.OutcomeError)
		return nil, fmt.Errorf("resolve item: %w", err)
	}
	if existing != nil {
		l.metrics.RecordOp("resolve_item", metrics.OutcomeOK)
		return existing, nil
	}

	itemName, err := name()
	if err != nil {
		return nil, fmt.Errorf("supply item name: %w", err)
	}
	itemCost, err := cost()
	if err != nil {
		return nil, fmt.Errorf("supply item cost: %w", err)
	}

	item, err := l.AddItem(ctx, itemName, itemCost)
	if err != nil {
		return nil, err
	}

	slog.Info("Item created during resolve", "item_id", item.ID, "name", item.Name)
	return item, nil
}

// AddPerson registers a housemate. First and last name are required;
// allergies and misc info are optional.
func (l *Ledger) AddPerson(ctx context.Context, firstName, lastName, allergies, miscInfo string) (*models.Person, error) {
	if firstName == "" {
		l.metrics.RecordOp("add_person", metrics.OutcomeValidation)
		return nil, validationErr("first name", "must not be empty")
	}
	if lastName == "" {
		l.metrics.RecordOp("add_person", metrics.OutcomeValidation)
		return nil, validationErr("last name", "must not be empty")
	}

	person := &models.Person{
		FirstName: firstName,
		LastName:  lastName,
		Allergies: allergies,
		MiscInfo:  miscInfo,
	}
	if err := l.store.CreatePerson(ctx, person); err != nil {
		l.metrics.RecordOp("add_person", metrics.OutcomeError)
		return nil, fmt.Errorf("add person: %w", err)
	}

	l.metrics.RecordOp("add_person", metrics.OutcomeOK)
	slog.Info("Person added", "person_id", person.ID, "name", person.FullName())
	return person, nil
}

// DeletePerson removes a person by id. The delete is unguarded: debts and
// needs referencing the person are left behind with dangling ids.
func (l *Ledger) DeletePerson(ctx context.Context, id int64) (bool, error) {
	found, err := l.store.DeletePerson(ctx, id)
	if err != nil {
		l.metrics.RecordOp("delete_person", metrics.OutcomeError)
		return false, fmt.Errorf("delete person: %w", err)
	}
	if !found {
		l.metrics.RecordOp("delete_person", metrics.OutcomeNotFound)
		slog.Warn("DeletePerson matched no row", "person_id", id)
		return false, nil
	}
	l.metrics.RecordOp("delete_person", metrics.OutcomeOK)
	slog.Info("Person deleted", "person_id", id)
	return true, nil
}

// AddItem adds an item to the catalog. The cost is advisory and may be zero.
func (l *Ledger) AddItem(ctx context.Context, name string, cost float64) (*models.Item, error) {
	if name == "" {
		l.metrics.RecordOp("add_item", metrics.OutcomeValidation)
		return nil, validationErr("item name", "must not be empty")
	}
	if cost < 0 {
		l.metrics.RecordOp("add_item", metrics.OutcomeValidation)
		return nil, validationErr("cost", "must not be negative, got %v", cost)
	}

	item := &models.Item{Name: name, DefaultCost: cost}
	if err := l.store.CreateItem(ctx, item); err != nil {
		l.metrics.RecordOp("add_item", metrics.OutcomeError)
		return nil, fmt.Errorf("add item: %w", err)
	}

	l.metrics.RecordOp("add_item", metrics.OutcomeOK)
	slog.Info("Item added", "item_id", item.ID, "name", item.Name, "default_cost", item.DefaultCost)
	return item, nil
}

// DeleteItem removes an item by id. Unguarded, like DeletePerson.
func (l *Ledger) DeleteItem(ctx context.Context, id int64) (bool, error) {
	found, err := l.store.DeleteItem(ctx, id)
	if err != nil {
		l.metrics.RecordOp("delete_item", metrics.OutcomeError)
		return false, fmt.Errorf("delete item: %w", err)
	}
	if !found {
		l.metrics.RecordOp("delete_item", metrics.OutcomeNotFound)
		slog.Warn("DeleteItem matched no row", "item_id", id)
		return false, nil
	}
	l.metrics.RecordOp("delete_item", metrics.OutcomeOK)
	slog.Info("Item deleted", "item_id", id)
	return true, nil
}

func (l *Ledger) requirePerson(ctx context.Context, role string, id int64) error {
	person, err := l.store.GetPerson(ctx, id)
	if err != nil {
		return fmt.Errorf("look up %s: %w", role, err)
	}
	if person == nil {
		return validationErr(role, "no person with id %d", id)
	}
	return nil
}

func (l *Ledger) requireItem(ctx context.Context, id int64) error {
	item, err := l.store.GetItem(ctx, id)
	if err != nil {
		return fmt.Errorf("look up item: %w", err)
	}
	if item == nil {
		return validationErr("item", "no item with id %d", id)
	}
	return nil
}
