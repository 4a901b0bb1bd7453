package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/okatsu/sharehouse/internal/models"
)

// CreatePerson inserts a new person and populates the ID field.
func (s *SQLiteStore) CreatePerson(ctx context.Context, person *models.Person) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO people (first_name, last_name, allergies, misc_info)
		 VALUES (?, ?, ?, ?)`,
		person.FirstName, person.LastName,
		nullableText(person.Allergies), nullableText(person.MiscInfo),
	)
	if err != nil {
		return fmt.Errorf("failed to insert person: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read person id: %w", err)
	}
	person.ID = id

	return nil
}

// GetPerson retrieves a person by id. Returns (nil, nil) when absent.
func (s *SQLiteStore) GetPerson(ctx context.Context, id int64) (*models.Person, error) {
	person := &models.Person{}
	var allergies, miscInfo sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT person_id, first_name, last_name, allergies, misc_info
		 FROM people WHERE person_id = ?`,
		id,
	).Scan(&person.ID, &person.FirstName, &person.LastName, &allergies, &miscInfo)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get person: %w", err)
	}

	person.Allergies = allergies.String
	person.MiscInfo = miscInfo.String

	return person, nil
}

// ListPeople returns every person in insertion order.
func (s *SQLiteStore) ListPeople(ctx context.Context) ([]models.Person, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT person_id, first_name, last_name, allergies, misc_info
		 FROM people ORDER BY person_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	defer rows.Close()

	var people []models.Person
	for rows.Next() {
		var person models.Person
		var allergies, miscInfo sql.NullString

		if err := rows.Scan(&person.ID, &person.FirstName, &person.LastName, &allergies, &miscInfo); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		person.Allergies = allergies.String
		person.MiscInfo = miscInfo.String

		people = append(people, person)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate people: %w", err)
	}

	return people, nil
}

// DeletePerson removes a person by id and reports whether a row existed.
// Rows referencing the person are untouched.
func (s *SQLiteStore) DeletePerson(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM people WHERE person_id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete person: %w", err)
	}
	return rowsAffected(res)
}

// nullableText maps an empty string to NULL so optional columns stay null
// instead of accumulating empty strings.
func nullableText(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// rowsAffected converts a delete/update result into a found/not-found flag.
func rowsAffected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n > 0, nil
}
