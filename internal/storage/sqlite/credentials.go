package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/okatsu/sharehouse/internal/storage"
)

// CreateCredential inserts a sealed credential and returns its id.
// A zero personID stores NULL.
func (s *SQLiteStore) CreateCredential(ctx context.Context, name string, sealed []byte, personID int64) (int64, error) {
	var person interface{}
	if personID != 0 {
		person = personID
	}

	res, err := s.db.ExecContext(ctx,
		"INSERT INTO credentials (name, sealed_value, person_id) VALUES (?, ?, ?)",
		name, sealed, person,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert credential: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read credential id: %w", err)
	}

	return id, nil
}

// ListCredentials returns every sealed credential in insertion order.
func (s *SQLiteStore) ListCredentials(ctx context.Context) ([]storage.SealedCredential, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT credential_id, name, sealed_value, person_id FROM credentials ORDER BY credential_id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list credentials: %w", err)
	}
	defer rows.Close()

	var creds []storage.SealedCredential
	for rows.Next() {
		var cred storage.SealedCredential
		var personID sql.NullInt64

		if err := rows.Scan(&cred.ID, &cred.Name, &cred.Sealed, &personID); err != nil {
			return nil, fmt.Errorf("failed to scan credential: %w", err)
		}
		cred.PersonID = personID.Int64

		creds = append(creds, cred)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate credentials: %w", err)
	}

	return creds, nil
}

// DeleteCredential removes a credential by id and reports whether a row existed.
func (s *SQLiteStore) DeleteCredential(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM credentials WHERE credential_id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete credential: %w", err)
	}
	return rowsAffected(res)
}
