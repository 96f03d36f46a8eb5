package testutil

import (
	"context"
	"testing"

	"github.com/mamadbah2/labshare/internal/domain/models"
)

// Microscope returns the reference available material used across tests.
func Microscope() models.Material {
	return models.Material{
		Name:         "Microscope",
		Lab:          "B12",
		Availability: models.AvailabilityAvailable,
		Preference:   models.PreferenceEmail,
		Email:        "a@b.com",
		Phone:        "",
		Description:  "x10",
	}
}

// Reserved returns a material that is not available, contacted by phone.
func Reserved(name string) models.Material {
	return models.Material{
		Name:         name,
		Lab:          "C3",
		Availability: models.AvailabilityReserved,
		Preference:   models.PreferencePhone,
		Email:        "lab@c3.edu",
		Phone:        "555-0100",
		Description:  "handle with care",
	}
}

// Seed inserts materials into repo and returns them with their assigned ids.
func Seed(t *testing.T, repo *MemoryRepository, materials ...models.Material) []models.Material {
	t.Helper()

	out := make([]models.Material, 0, len(materials))
	for _, m := range materials {
		id, err := repo.Insert(context.Background(), m)
		if err != nil {
			t.Fatalf("failed to seed material %q: %v", m.Name, err)
		}
		m.ID = id
		out = append(out, m)
	}
	return out
}
