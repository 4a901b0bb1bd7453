package models

// HouseholdNeed is a planned-but-not-yet-settled purchase for shared benefit.
// Unlike debts, a purchased need keeps its row (flag flip, no deletion) so the
// household retains a history of what it has bought.
type HouseholdNeed struct {
	// ID is assigned by the store on insert.
	ID int64

	// ItemID references the Item the household needs.
	ItemID int64

	// Budget is how much the household is willing to spend. Never negative.
	Budget float64

	// AssignedTo optionally references the Person expected to buy it.
	// Zero means unassigned.
	AssignedTo int64

	// DesiredDate is the optional target purchase date, free-form.
	DesiredDate string

	// Purchased is set once the need has been bought. The row is never
	// deleted by ledger operations.
	Purchased bool
}
