package ledger

import (
	"context"
	"fmt"

	"github.com/okatsu/sharehouse/internal/models"
)

// ListPeople returns every housemate in insertion order.
func (l *Ledger) ListPeople(ctx context.Context) ([]models.Person, error) {
	people, err := l.store.ListPeople(ctx)
	if err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}
	return people, nil
}

// ListItems returns the catalog in insertion order. Items without a recorded
// cost come back with a cost of 0, never null.
func (l *Ledger) ListItems(ctx context.Context) ([]models.Item, error) {
	items, err := l.store.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// TotalOwedPerPerson sums outstanding debt per debtor. People who owe
// nothing are omitted entirely, not listed with zero.
func (l *Ledger) TotalOwedPerPerson(ctx context.Context) ([]models.PersonTotal, error) {
	totals, err := l.store.TotalOwedPerPerson(ctx)
	if err != nil {
		return nil, fmt.Errorf("total owed per person: %w", err)
	}
	return totals, nil
}

// UnresolvedDebtDetails lists every outstanding liability joined with the
// debtor, creditor and item, in origin order.
func (l *Ledger) UnresolvedDebtDetails(ctx context.Context) ([]models.DebtDetail, error) {
	details, err := l.store.UnresolvedDebtDetails(ctx)
	if err != nil {
		return nil, fmt.Errorf("unresolved debt details: %w", err)
	}
	return details, nil
}

// HouseholdNeedsByStatus lists needs matching the purchased flag.
func (l *Ledger) HouseholdNeedsByStatus(ctx context.Context, purchased bool) ([]models.NeedStatus, error) {
	needs, err := l.store.NeedsByStatus(ctx, purchased)
	if err != nil {
		return nil, fmt.Errorf("household needs by status: %w", err)
	}
	return needs, nil
}

// PendingNeeds lists the not-yet-purchased needs with their ids, for
// selection when marking one purchased.
func (l *Ledger) PendingNeeds(ctx context.Context) ([]models.NeedStatus, error) {
	return l.HouseholdNeedsByStatus(ctx, false)
}
