package sqlite

import (
	"context"
	"fmt"

	"github.com/okatsu/sharehouse/internal/models"
)

// CreateNeed inserts a household need and populates the ID field.
// A zero AssignedTo stores NULL, as does an empty DesiredDate.
func (s *SQLiteStore) CreateNeed(ctx context.Context, need *models.HouseholdNeed) error {
	var assignedTo interface{}
	if need.AssignedTo != 0 {
		assignedTo = need.AssignedTo
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO household_needs (item_id, budget, assigned_to, desired_date, is_purchased)
		 VALUES (?, ?, ?, ?, ?)`,
		need.ItemID, need.Budget, assignedTo, nullableText(need.DesiredDate), boolToInt(need.Purchased),
	)
	if err != nil {
		return fmt.Errorf("failed to insert household need: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read need id: %w", err)
	}
	need.ID = id

	return nil
}

// MarkNeedPurchased flips the purchased flag on the matching row in place.
// Reports whether a row existed; a miss is not an error.
func (s *SQLiteStore) MarkNeedPurchased(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE household_needs SET is_purchased = 1 WHERE need_id = ?", id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark need purchased: %w", err)
	}
	return rowsAffected(res)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
