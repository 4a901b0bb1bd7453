package models

// PersonTotal is one row of the who-owes-how-much aggregation. People with
// no outstanding debt are omitted from the aggregation entirely, so a
// PersonTotal always carries a positive Total.
type PersonTotal struct {
	Name  string  // debtor's full name
	Total float64 // sum of their outstanding mapping amounts
}

// DebtDetail is one outstanding liability joined across people, origin and
// item, ready for display.
type DebtDetail struct {
	OriginID int64
	Debtor   string // full name of who owes
	Creditor string // full name of who is owed
	ItemName string
	Amount   float64
}

// NeedStatus is one household need joined with its item, used both for
// status listings and for picking a need to mark purchased.
type NeedStatus struct {
	NeedID    int64
	ItemName  string
	Budget    float64
	Purchased bool
}
