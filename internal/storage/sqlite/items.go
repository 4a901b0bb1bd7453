package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/okatsu/sharehouse/internal/models"
)

// CreateItem inserts a new catalog item and populates the ID field.
// A zero cost is stored as NULL.
func (s *SQLiteStore) CreateItem(ctx context.Context, item *models.Item) error {
	var cost interface{}
	if item.DefaultCost != 0 {
		cost = item.DefaultCost
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO items (item_name, default_cost) VALUES (?, ?)",
		item.Name, cost,
	)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read item id: %w", err)
	}
	item.ID = id

	return nil
}

// GetItem retrieves an item by id. Returns (nil, nil) when absent.
// A missing cost reads back as 0.
func (s *SQLiteStore) GetItem(ctx context.Context, id int64) (*models.Item, error) {
	item := &models.Item{}

	err := s.db.QueryRowContext(ctx,
		"SELECT item_id, item_name, COALESCE(default_cost, 0) FROM items WHERE item_id = ?",
		id,
	).Scan(&item.ID, &item.Name, &item.DefaultCost)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return item, nil
}

// ListItems returns every item in insertion order, coercing a missing cost
// to 0 so downstream arithmetic never sees null.
func (s *SQLiteStore) ListItems(ctx context.Context) ([]models.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT item_id, item_name, COALESCE(default_cost, 0) FROM items ORDER BY item_id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var item models.Item
		if err := rows.Scan(&item.ID, &item.Name, &item.DefaultCost); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return items, nil
}

// DeleteItem removes an item by id and reports whether a row existed.
// Debts and needs referencing the item are untouched.
func (s *SQLiteStore) DeleteItem(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM items WHERE item_id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete item: %w", err)
	}
	return rowsAffected(res)
}
