package sqlite

import (
	"context"
	"fmt"

	"github.com/okatsu/sharehouse/internal/models"
)

// CreateDebt inserts the origin event and its mapping in a single
// transaction. The origin's ID field is populated and copied into the
// mapping before the mapping insert; on any failure neither row is visible.
func (s *SQLiteStore) CreateDebt(ctx context.Context, origin *models.DebtOrigin, mapping *models.DebtMapping) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO debt_origins (item_id, purchase_date, purchased_by) VALUES (?, ?, ?)",
		origin.ItemID, nullableText(origin.PurchaseDate), origin.PurchasedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert debt origin: %w", err)
	}

	originID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read origin id: %w", err)
	}
	origin.ID = originID
	mapping.OriginID = originID

	_, err = tx.ExecContext(ctx,
		"INSERT INTO debt_mappings (origin_id, owed_by, owed_to, amount) VALUES (?, ?, ?, ?)",
		mapping.OriginID, mapping.OwedBy, mapping.OwedTo, mapping.Amount,
	)
	if err != nil {
		return fmt.Errorf("failed to insert debt mapping: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// DeleteDebt removes the mapping rows keyed by the origin id and, when
// retainOrigin is false, the origin row as well, all in one transaction.
// Reports whether any mapping row existed; a miss is not an error.
func (s *SQLiteStore) DeleteDebt(ctx context.Context, originID int64, retainOrigin bool) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, "DELETE FROM debt_mappings WHERE origin_id = ?", originID)
	if err != nil {
		return false, fmt.Errorf("failed to delete debt mappings: %w", err)
	}
	found, err := rowsAffected(res)
	if err != nil {
		return false, err
	}

	if !retainOrigin {
		if _, err := tx.ExecContext(ctx, "DELETE FROM debt_origins WHERE origin_id = ?", originID); err != nil {
			return false, fmt.Errorf("failed to delete debt origin: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return found, nil
}
