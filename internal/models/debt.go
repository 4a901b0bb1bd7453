package models

// DebtOrigin records the purchasing event that created a debt:
// what was bought, when, and by whom.
type DebtOrigin struct {
	// ID is assigned by the store on insert.
	ID int64

	// ItemID references the purchased Item.
	ItemID int64

	// PurchaseDate is the date of the purchase, free-form (usually YYYY-MM-DD).
	// Optional; empty means unknown.
	PurchaseDate string

	// PurchasedBy references the Person who made the purchase.
	PurchasedBy int64
}

// DebtMapping is the liability itself: one debtor, one creditor, one amount,
// tied to exactly one origin event. There is no paid flag; settling a debt
// deletes the row.
type DebtMapping struct {
	// OriginID references the DebtOrigin this liability came from.
	OriginID int64

	// OwedBy references the Person who owes the money.
	OwedBy int64

	// OwedTo references the Person who is owed.
	OwedTo int64

	// Amount is the outstanding value. Only meaningful while the row exists.
	Amount float64
}
