// Package menu implements the interactive text interface. It only prompts,
// calls ledger operations and prints report output; all business rules live
// in the ledger.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/okatsu/sharehouse/internal/ledger"
	"github.com/okatsu/sharehouse/internal/report"
	"github.com/okatsu/sharehouse/internal/vault"
)

// Menu drives the interactive loop over a ledger and an optional vault.
type Menu struct {
	ledger *ledger.Ledger
	vault  *vault.Vault
	in     *bufio.Scanner
	out    io.Writer
}

// New creates a menu reading from in and writing to out.
func New(l *ledger.Ledger, v *vault.Vault, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		ledger: l,
		vault:  v,
		in:     bufio.NewScanner(in),
		out:    out,
	}
}

// Run loops until the user exits or input is exhausted.
func (m *Menu) Run(ctx context.Context) error {
	for {
		fmt.Fprint(m.out, `
What would you like? Type the number associated with the option:
1. Record debt
2. Record household need
3. Settle debt
4. Mark household need purchased
5. Visualize
6. Manage people
7. Manage items
8. Credential vault
e. Exit
`)
		choice, ok := m.prompt("Enter your choice: ")
		if !ok {
			return nil
		}

		var err error
		switch strings.ToLower(choice) {
		case "1":
			err = m.recordDebt(ctx)
		case "2":
			err = m.recordNeed(ctx)
		case "3":
			err = m.settleDebt(ctx)
		case "4":
			err = m.markNeedPurchased(ctx)
		case "5":
			err = m.visualize(ctx)
		case "6":
			err = m.managePeople(ctx)
		case "7":
			err = m.manageItems(ctx)
		case "8":
			err = m.credentialVault(ctx)
		case "e":
			fmt.Fprintln(m.out, "Exiting. Goodbye!")
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid choice. Please try again.")
			continue
		}

		if err != nil {
			var verr *ledger.ValidationError
			if errors.As(err, &verr) {
				fmt.Fprintf(m.out, "Cannot do that: %s\n", verr)
				continue
			}
			if errors.Is(err, errInputClosed) {
				return nil
			}
			return err
		}
	}
}

func (m *Menu) recordDebt(ctx context.Context) error {
	people, err := m.ledger.ListPeople(ctx)
	if err != nil {
		return err
	}
	fmt.Fprint(m.out, report.PeopleTable(people))

	debtorID, err := m.promptID("Who owes the money (person id)? ")
	if err != nil {
		return err
	}
	creditorID, err := m.promptID("Who is owed (person id)? ")
	if err != nil {
		return err
	}

	item, err := m.pickItem(ctx)
	if err != nil {
		return err
	}

	amount, err := m.promptFloat("Amount owed: ")
	if err != nil {
		return err
	}
	date, ok := m.prompt("Purchase date (empty for today): ")
	if !ok {
		return errInputClosed
	}
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	mapping, err := m.ledger.RecordDebt(ctx, item.ID, debtorID, creditorID, amount, date)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Recorded debt %d: %.2f for %s.\n", mapping.OriginID, mapping.Amount, item.Name)
	return nil
}

func (m *Menu) recordNeed(ctx context.Context) error {
	item, err := m.pickItem(ctx)
	if err != nil {
		return err
	}

	budget, err := m.promptFloat("Budget: ")
	if err != nil {
		return err
	}

	assigned, ok := m.prompt("Assigned person id (empty for none): ")
	if !ok {
		return errInputClosed
	}
	var assignedID int64
	if assigned != "" {
		assignedID, err = strconv.ParseInt(assigned, 10, 64)
		if err != nil {
			fmt.Fprintln(m.out, "Not a number, leaving unassigned.")
			assignedID = 0
		}
	}

	date, ok := m.prompt("Desired purchase date (empty for none): ")
	if !ok {
		return errInputClosed
	}

	need, err := m.ledger.RecordHouseholdNeed(ctx, item.ID, budget, assignedID, date)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.out, "Recorded need %d for %s.\n", need.ID, item.Name)
	return nil
}

func (m *Menu) settleDebt(ctx context.Context) error {
	details, err := m.ledger.UnresolvedDebtDetails(ctx)
	if err != nil {
		return err
	}
	fmt.Fprint(m.out, report.DebtsTable(details))
	if len(details) == 0 {
		return nil
	}

	originID, err := m.promptID("Origin id to settle: ")
	if err != nil {
		return err
	}

	found, err := m.ledger.SettleDebt(ctx, originID)
	if err != nil {
		return err
	}
	if !found {
		fmt.Fprintf(m.out, "No debt with origin id %d; nothing settled.\n", originID)
		return nil
	}
	fmt.Fprintln(m.out, "Debt settled.")
	return nil
}

func (m *Menu) markNeedPurchased(ctx context.Context) error {
	pending, err := m.ledger.PendingNeeds(ctx)
	if err != nil {
		return err
	}
	fmt.Fprint(m.out, report.NeedsTable(pending))
	if len(pending) == 0 {
		return nil
	}

	needID, err := m.promptID("Need id that was purchased: ")
	if err != nil {
		return err
	}

	found, err := m.ledger.MarkNeedPurchased(ctx, needID)
	if err != nil {
		return err
	}
	if !found {
		fmt.Fprintf(m.out, "No need with id %d; nothing changed.\n", needID)
		return nil
	}
	fmt.Fprintln(m.out, "Need marked purchased.")
	return nil
}

func (m *Menu) visualize(ctx context.Context) error {
	totals, err := m.ledger.TotalOwedPerPerson(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(m.out, "\nTotal owed per person:")
	fmt.Fprint(m.out, report.OwedChart(totals))

	details, err := m.ledger.UnresolvedDebtDetails(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(m.out, "\nOutstanding debts:")
	fmt.Fprint(m.out, report.DebtsTable(details))

	pending, err := m.ledger.PendingNeeds(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(m.out, "\nStill needed:")
	fmt.Fprint(m.out, report.NeedsTable(pending))

	bought, err := m.ledger.HouseholdNeedsByStatus(ctx, true)
	if err != nil {
		return err
	}
	fmt.Fprintln(m.out, "\nAlready purchased:")
	fmt.Fprint(m.out, report.NeedsTable(bought))
	return nil
}

func (m *Menu) managePeople(ctx context.Context) error {
	people, err := m.ledger.ListPeople(ctx)
	if err != nil {
		return err
	}
	fmt.Fprint(m.out, report.PeopleTable(people))

	action, ok := m.prompt("(a)dd, (d)elete, or anything else to go back: ")
	if !ok {
		return errInputClosed
	}
	switch strings.ToLower(action) {
	case "a":
		first, ok := m.prompt("First name: ")
		if !ok {
			return errInputClosed
		}
		last, ok := m.prompt("Last name: ")
		if !ok {
			return errInputClosed
		}
		allergies, ok := m.prompt("Allergies (empty for none): ")
		if !ok {
			return errInputClosed
		}
		misc, ok := m.prompt("Notes (empty for none): ")
		if !ok {
			return errInputClosed
		}
		person, err := m.ledger.AddPerson(ctx, first, last, allergies, misc)
		if err != nil {
			return err
		}
		fmt.Fprintf(m.out, "Added %s (id %d).\n", person.FullName(), person.ID)
	case "d":
		id, err := m.promptID("Person id to delete: ")
		if err != nil {
			return err
		}
		found, err := m.ledger.DeletePerson(ctx, id)
		if err != nil {
			return err
		}
		if found {
			fmt.Fprintln(m.out, "Deleted. Debts referencing this person are kept as-is.")
		} else {
			fmt.Fprintln(m.out, "No such person.")
		}
	}
	return nil
}

func (m *Menu) manageItems(ctx context.Context) error {
	items, err := m.ledger.ListItems(ctx)
	if err != nil {
		return err
	}
	fmt.Fprint(m.out, report.ItemsTable(items))

	action, ok := m.prompt("(a)dd, (d)elete, or anything else to go back: ")
	if !ok {
		return errInputClosed
	}
	switch strings.ToLower(action) {
	case "a":
		name, ok := m.prompt("Item name: ")
		if !ok {
			return errInputClosed
		}
		cost, err := m.promptFloat("Default cost (0 for unknown): ")
		if err != nil {
			return err
		}
		item, err := m.ledger.AddItem(ctx, name, cost)
		if err != nil {
			return err
		}
		fmt.Fprintf(m.out, "Added %s (id %d).\n", item.Name, item.ID)
	case "d":
		id, err := m.promptID("Item id to delete: ")
		if err != nil {
			return err
		}
		found, err := m.ledger.DeleteItem(ctx, id)
		if err != nil {
			return err
		}
		if found {
			fmt.Fprintln(m.out, "Deleted. Debts and needs referencing this item are kept as-is.")
		} else {
			fmt.Fprintln(m.out, "No such item.")
		}
	}
	return nil
}

func (m *Menu) credentialVault(ctx context.Context) error {
	if !m.vault.Enabled() {
		fmt.Fprintln(m.out, "Vault is disabled; set VAULT_KEY to use it.")
		return nil
	}

	action, ok := m.prompt("(l)ist, (a)dd, (d)elete, or anything else to go back: ")
	if !ok {
		return errInputClosed
	}
	switch strings.ToLower(action) {
	case "l":
		creds, err := m.vault.List(ctx)
		if err != nil {
			return err
		}
		if len(creds) == 0 {
			fmt.Fprintln(m.out, "Vault is empty.")
			return nil
		}
		for _, c := range creds {
			fmt.Fprintf(m.out, "%d. %s: %s\n", c.ID, c.Name, c.Value)
		}
	case "a":
		name, ok := m.prompt("Credential name: ")
		if !ok {
			return errInputClosed
		}
		value, ok := m.prompt("Value: ")
		if !ok {
			return errInputClosed
		}
		id, err := m.vault.Put(ctx, name, value, 0)
		if err != nil {
			return err
		}
		fmt.Fprintf(m.out, "Stored credential %d.\n", id)
	case "d":
		id, err := m.promptID("Credential id to delete: ")
		if err != nil {
			return err
		}
		found, err := m.vault.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !found {
			fmt.Fprintln(m.out, "No such credential.")
		} else {
			fmt.Fprintln(m.out, "Deleted.")
		}
	}
	return nil
}

// pickItem lets the user select an existing item by id or type an unknown id
// to create a new one, prompting for name and cost on demand.
func (m *Menu) pickItem(ctx context.Context) (item *itemRef, err error) {
	items, err := m.ledger.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	fmt.Fprint(m.out, report.ItemsTable(items))

	candidateID, err := m.promptID("Item id (unknown id to add a new item): ")
	if err != nil {
		return nil, err
	}

	resolved, err := m.ledger.ResolveOrCreateItem(ctx, candidateID,
		func() (string, error) {
			name, ok := m.prompt("New item name: ")
			if !ok {
				return "", errInputClosed
			}
			return name, nil
		},
		func() (float64, error) {
			return m.promptFloat("New item default cost (0 for unknown): ")
		},
	)
	if err != nil {
		return nil, err
	}
	return &itemRef{ID: resolved.ID, Name: resolved.Name}, nil
}

type itemRef struct {
	ID   int64
	Name string
}

var errInputClosed = errors.New("input closed")

func (m *Menu) prompt(label string) (string, bool) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *Menu) promptID(label string) (int64, error) {
	for {
		text, ok := m.prompt(label)
		if !ok {
			return 0, errInputClosed
		}
		id, err := strconv.ParseInt(text, 10, 64)
		if err == nil {
			return id, nil
		}
		fmt.Fprintln(m.out, "Please enter a number.")
	}
}

func (m *Menu) promptFloat(label string) (float64, error) {
	for {
		text, ok := m.prompt(label)
		if !ok {
			return 0, errInputClosed
		}
		f, err := strconv.ParseFloat(text, 64)
		if err == nil {
			return f, nil
		}
		fmt.Fprintln(m.out, "Please enter a number.")
	}
}
