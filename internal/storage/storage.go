// Package storage defines the record store contract and its two strategies:
// a JSON-file-backed store and a MongoDB-backed store. The strategy is picked
// once at startup and fixed for the process lifetime.
package storage

import (
	"context"
	"errors"

	"hackreg/internal/models"
)

var (
	// ErrNotFound is returned by lookups when no record matches.
	ErrNotFound = errors.New("student not found")

	// ErrDuplicate is returned by Insert when a record with the same id,
	// email or roll number already exists.
	ErrDuplicate = errors.New("student already exists")
)

// Store is the persistence contract shared by both strategies.
type Store interface {
	// List returns all records, most recently registered first.
	List(ctx context.Context) ([]models.Student, error)

	// FindByEmail and FindByRollNumber back the uniqueness checks.
	// Both return ErrNotFound when no record matches.
	FindByEmail(ctx context.Context, email string) (*models.Student, error)
	FindByRollNumber(ctx context.Context, rollNumber string) (*models.Student, error)

	// Insert stores a record whose id has already been assigned. It never
	// overwrites: an existing id, email or roll number yields ErrDuplicate.
	Insert(ctx context.Context, student *models.Student) error

	GetByID(ctx context.Context, id string) (*models.Student, error)

	// DeleteByID removes a record, returning ErrNotFound if the id is absent.
	DeleteByID(ctx context.Context, id string) error

	Count(ctx context.Context) (int, error)

	// CountByField maps each distinct value of field ("department" or
	// "year") to the number of records holding it.
	CountByField(ctx context.Context, field string) (map[string]int, error)

	Close(ctx context.Context) error
}
