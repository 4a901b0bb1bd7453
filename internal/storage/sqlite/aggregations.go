package sqlite

import (
	"context"
	"fmt"

	"github.com/okatsu/sharehouse/internal/models"
)

// TotalOwedPerPerson sums outstanding mapping amounts grouped by debtor.
// The inner join is the filter: people with no outstanding debt produce no
// row at all, they are not reported with a zero.
func (s *SQLiteStore) TotalOwedPerPerson(ctx context.Context) ([]models.PersonTotal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT p.first_name || ' ' || p.last_name, SUM(m.amount)
		 FROM debt_mappings m
		 JOIN people p ON p.person_id = m.owed_by
		 GROUP BY m.owed_by
		 ORDER BY m.owed_by`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query totals: %w", err)
	}
	defer rows.Close()

	var totals []models.PersonTotal
	for rows.Next() {
		var total models.PersonTotal
		if err := rows.Scan(&total.Name, &total.Total); err != nil {
			return nil, fmt.Errorf("failed to scan total: %w", err)
		}
		totals = append(totals, total)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate totals: %w", err)
	}

	return totals, nil
}

// UnresolvedDebtDetails projects every live mapping with a positive amount
// across both people, the origin event and the item, in origin order.
func (s *SQLiteStore) UnresolvedDebtDetails(ctx context.Context) ([]models.DebtDetail, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT m.origin_id,
		        debtor.first_name || ' ' || debtor.last_name,
		        creditor.first_name || ' ' || creditor.last_name,
		        i.item_name,
		        m.amount
		 FROM debt_mappings m
		 JOIN people debtor ON debtor.person_id = m.owed_by
		 JOIN people creditor ON creditor.person_id = m.owed_to
		 JOIN debt_origins o ON o.origin_id = m.origin_id
		 JOIN items i ON i.item_id = o.item_id
		 WHERE m.amount > 0
		 ORDER BY m.origin_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query debt details: %w", err)
	}
	defer rows.Close()

	var details []models.DebtDetail
	for rows.Next() {
		var detail models.DebtDetail
		if err := rows.Scan(&detail.OriginID, &detail.Debtor, &detail.Creditor, &detail.ItemName, &detail.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan debt detail: %w", err)
		}
		details = append(details, detail)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate debt details: %w", err)
	}

	return details, nil
}

// NeedsByStatus lists the needs matching the purchased flag joined with
// their item names, in insertion order.
func (s *SQLiteStore) NeedsByStatus(ctx context.Context, purchased bool) ([]models.NeedStatus, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT n.need_id, i.item_name, n.budget, n.is_purchased
		 FROM household_needs n
		 JOIN items i ON i.item_id = n.item_id
		 WHERE n.is_purchased = ?
		 ORDER BY n.need_id`,
		boolToInt(purchased),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query needs: %w", err)
	}
	defer rows.Close()

	var needs []models.NeedStatus
	for rows.Next() {
		var need models.NeedStatus
		var flag int
		if err := rows.Scan(&need.NeedID, &need.ItemName, &need.Budget, &flag); err != nil {
			return nil, fmt.Errorf("failed to scan need: %w", err)
		}
		need.Purchased = flag != 0
		needs = append(needs, need)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate needs: %w", err)
	}

	return needs, nil
}
