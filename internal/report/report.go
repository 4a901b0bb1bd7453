// Package report renders aggregation results for the terminal. It consumes
// already-derived data only; nothing here touches storage.
package report

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/okatsu/sharehouse/internal/models"
)

// barWidth is the length of a full bar in OwedChart.
const barWidth = 40

// PeopleTable renders housemates as an aligned table.
func PeopleTable(people []models.Person) string {
	if len(people) == 0 {
		return "no people recorded\n"
	}

	var b strings.Builder
	w := newTable(&b)
	fmt.Fprintln(w, "ID\tNAME\tALLERGIES\tNOTES")
	for i := range people {
		p := &people[i]
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.ID, p.FullName(), dash(p.Allergies), dash(p.MiscInfo))
	}
	w.Flush()
	return b.String()
}

// ItemsTable renders the item catalog with costs.
func ItemsTable(items []models.Item) string {
	if len(items) == 0 {
		return "no items recorded\n"
	}

	var b strings.Builder
	w := newTable(&b)
	fmt.Fprintln(w, "ID\tITEM\tDEFAULT COST")
	for _, item := range items {
		fmt.Fprintf(w, "%d\t%s\t%.2f\n", item.ID, item.Name, item.DefaultCost)
	}
	w.Flush()
	return b.String()
}

// DebtsTable renders outstanding liabilities.
func DebtsTable(details []models.DebtDetail) string {
	if len(details) == 0 {
		return "no outstanding debts\n"
	}

	var b strings.Builder
	w := newTable(&b)
	fmt.Fprintln(w, "ORIGIN\tOWED BY\tOWED TO\tITEM\tAMOUNT")
	for _, d := range details {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%.2f\n", d.OriginID, d.Debtor, d.Creditor, d.ItemName, d.Amount)
	}
	w.Flush()
	return b.String()
}

// NeedsTable renders household needs with their budgets.
func NeedsTable(needs []models.NeedStatus) string {
	if len(needs) == 0 {
		return "no household needs\n"
	}

	var b strings.Builder
	w := newTable(&b)
	fmt.Fprintln(w, "ID\tITEM\tBUDGET")
	for _, n := range needs {
		fmt.Fprintf(w, "%d\t%s\t%.2f\n", n.NeedID, n.ItemName, n.Budget)
	}
	w.Flush()
	return b.String()
}

// OwedChart renders a horizontal bar per debtor, scaled so the largest
// total fills the bar.
func OwedChart(totals []models.PersonTotal) string {
	if len(totals) == 0 {
		return "nobody owes anything\n"
	}

	max := totals[0].Total
	nameWidth := len(totals[0].Name)
	for _, t := range totals[1:] {
		if t.Total > max {
			max = t.Total
		}
		if len(t.Name) > nameWidth {
			nameWidth = len(t.Name)
		}
	}

	var b strings.Builder
	for _, t := range totals {
		n := int(t.Total / max * barWidth)
		if n < 1 {
			n = 1
		}
		fmt.Fprintf(&b, "%-*s  %s %.2f\n", nameWidth, t.Name, strings.Repeat("#", n), t.Total)
	}
	return b.String()
}

func newTable(b *strings.Builder) *tabwriter.Writer {
	return tabwriter.NewWriter(b, 0, 4, 2, ' ', 0)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
