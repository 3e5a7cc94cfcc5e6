package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"movienight/internal/model"
)

// ErrPersonNotFound indicates that a person was not located in the DB.
var ErrPersonNotFound = errors.New("person not found")

// PersonRepo provides read and insert operations for persons.
type PersonRepo struct {
	db *sql.DB
}

// NewPersonRepo returns a new PersonRepo bound to the given database.
func NewPersonRepo(db *sql.DB) *PersonRepo { return &PersonRepo{db: db} }

// Create inserts a new person, assigning a random UUID when the caller
// has not provided one.
func (r *PersonRepo) Create(ctx context.Context, p *model.Person) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	const q = `INSERT INTO persons (id, name) VALUES (?, ?)`
	_, err := r.db.ExecContext(ctx, q, p.ID, p.Name)
	return err
}

// GetByID retrieves a person by their ID.  It returns ErrPersonNotFound
// if no person with that id exists.
func (r *PersonRepo) GetByID(ctx context.Context, id string) (*model.Person, error) {
	const q = `SELECT id, name FROM persons WHERE id = ?`
	var p model.Person
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&p.ID, &p.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPersonNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Fixed list variants, same scheme as MovieRepo.List.
const (
	listPersonsQ = `SELECT id, name FROM persons
		ORDER BY name LIMIT ? OFFSET ?`
	listPersonsByNameQ = `SELECT id, name FROM persons
		WHERE UPPER(name) LIKE ?
		ORDER BY name LIMIT ? OFFSET ?`
)

// List returns persons ordered by name with limit/offset paging and an
// optional case-insensitive name-substring filter.
func (r *PersonRepo) List(ctx context.Context, name string, limit, offset int) ([]model.Person, error) {
	var rows *sql.Rows
	var err error
	if name != "" {
		rows, err = r.db.QueryContext(ctx, listPersonsByNameQ, "%"+strings.ToUpper(name)+"%", limit, offset)
	} else {
		rows, err = r.db.QueryContext(ctx, listPersonsQ, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Person, 0, limit)
	for rows.Next() {
		var p model.Person
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
