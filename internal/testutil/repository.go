// Package testutil provides in-memory collaborators and fixtures for tests.
package testutil

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/labshare/internal/domain/models"
)

// MemoryRepository is an in-memory stand-in for the MongoDB materials store.
// It keeps insertion order and supports exact-match filters on every field.
type MemoryRepository struct {
	mu        sync.Mutex
	materials []models.Material

	// Err, when set, is returned by every operation.
	Err error

	Finds   []models.Filter
	Inserts int
	Deletes int
}

// NewMemoryRepository returns an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Find(_ context.Context, filter models.Filter) ([]models.Material, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Finds = append(r.Finds, filter)
	if r.Err != nil {
		return nil, r.Err
	}

	out := []models.Material{}
	for _, m := range r.materials {
		if matches(m, filter) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *MemoryRepository) Insert(_ context.Context, material models.Material) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Inserts++
	if r.Err != nil {
		return primitive.NilObjectID, r.Err
	}

	material.ID = primitive.NewObjectID()
	r.materials = append(r.materials, material)
	return material.ID, nil
}

func (r *MemoryRepository) DeleteByID(_ context.Context, id primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Deletes++
	if r.Err != nil {
		return 0, r.Err
	}

	for i, m := range r.materials {
		if m.ID == id {
			r.materials = append(r.materials[:i], r.materials[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *MemoryRepository) Ping(context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Err
}

// Len returns the number of stored materials.
func (r *MemoryRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.materials)
}

func matches(m models.Material, filter models.Filter) bool {
	for field, want := range filter {
		var got any
		switch field {
		case "_id":
			got = m.ID
		case "name":
			got = m.Name
		case "lab":
			got = m.Lab
		case "email":
			got = m.Email
		case "phone":
			got = m.Phone
		case "preference":
			got = m.Preference
		case "availability":
			got = m.Availability
		case "description":
			got = m.Description
		default:
			return false
		}
		if got != want {
			return false
		}
	}
	return true
}
