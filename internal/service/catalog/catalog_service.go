package catalog

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mamadbah2/labshare/internal/domain/models"
	repo "github.com/mamadbah2/labshare/internal/repository/mongodb"
)

// Service describes the catalogue operations the HTTP layer can perform.
type Service interface {
	List(ctx context.Context, search string) ([]models.Material, error)
	Add(ctx context.Context, form models.MaterialForm) (primitive.ObjectID, error)
	Get(ctx context.Context, id primitive.ObjectID) (models.Material, bool, error)
	Remove(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// MaterialService is the production catalogue backed by the materials store.
// Each method issues exactly one store operation.
type MaterialService struct {
	repo   repo.Repository
	logger *zap.Logger
}

// NewService wires a new catalogue service instance.
func NewService(repository repo.Repository, logger *zap.Logger) *MaterialService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MaterialService{repo: repository, logger: logger}
}

// List returns every material when search is empty, otherwise the materials
// whose name equals search exactly.
func (s *MaterialService) List(ctx context.Context, search string) ([]models.Material, error) {
	filter := models.MatchAll()
	if search != "" {
		filter = models.ByName(search)
	}

	materials, err := s.repo.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	return materials, nil
}

// Add stores the submitted material as-is and returns its new id.
func (s *MaterialService) Add(ctx context.Context, form models.MaterialForm) (primitive.ObjectID, error) {
	id, err := s.repo.Insert(ctx, form.Material())
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("add material: %w", err)
	}
	s.logger.Debug("material created", zap.String("id", id.Hex()), zap.String("name", form.Name))
	return id, nil
}

// Get looks up a single material. The boolean is false when no record matches.
func (s *MaterialService) Get(ctx context.Context, id primitive.ObjectID) (models.Material, bool, error) {
	materials, err := s.repo.Find(ctx, models.ByID(id))
	if err != nil {
		return models.Material{}, false, fmt.Errorf("get material %s: %w", id.Hex(), err)
	}
	if len(materials) == 0 {
		return models.Material{}, false, nil
	}
	return materials[0], true, nil
}

// Remove deletes the material and returns the number of records removed (0 or 1).
func (s *MaterialService) Remove(ctx context.Context, id primitive.ObjectID) (int64, error) {
	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("remove material %s: %w", id.Hex(), err)
	}
	return deleted, nil
}
