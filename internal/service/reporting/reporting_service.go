package reporting

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/labshare/internal/domain/models"
	"github.com/mamadbah2/labshare/internal/metrics"
	"github.com/mamadbah2/labshare/internal/repository/mongodb"
	"github.com/mamadbah2/labshare/internal/repository/sheets"
)

const dateLayout = "2006-01-02"

// Service produces read-only inventory summaries of the materials catalogue.
type Service struct {
	repo   mongodb.Repository
	sheets sheets.Repository
	logger *zap.Logger
}

// NewService wires a new reporting service instance. sheetsRepo may be nil,
// in which case snapshots are only logged.
func NewService(repository mongodb.Repository, sheetsRepo sheets.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repository, sheets: sheetsRepo, logger: logger}
}

// Snapshot counts the catalogue with a single match-all query.
func (s *Service) Snapshot(ctx context.Context, now time.Time) (models.InventorySnapshot, error) {
	materials, err := s.repo.Find(ctx, models.MatchAll())
	if err != nil {
		return models.InventorySnapshot{}, fmt.Errorf("load materials: %w", err)
	}

	snapshot := models.InventorySnapshot{Date: now, Total: len(materials)}
	labs := make(map[string]struct{})
	for _, m := range materials {
		if m.IsAvailable() {
			snapshot.Available++
		} else {
			snapshot.Unavailable++
		}
		labs[m.Lab] = struct{}{}
	}
	snapshot.Labs = len(labs)

	return snapshot, nil
}

// Publish takes a snapshot, logs it and appends it to the spreadsheet when one is configured.
func (s *Service) Publish(ctx context.Context, now time.Time) (snapshot models.InventorySnapshot, err error) {
	defer func() {
		metrics.InventorySnapshotTotal.WithLabelValues(metrics.Outcome(err)).Inc()
	}()

	snapshot, err = s.Snapshot(ctx, now)
	if err != nil {
		return models.InventorySnapshot{}, err
	}

	s.logger.Info("inventory snapshot",
		zap.String("date", snapshot.Date.Format(dateLayout)),
		zap.Int("total", snapshot.Total),
		zap.Int("available", snapshot.Available),
		zap.Int("unavailable", snapshot.Unavailable),
		zap.Int("labs", snapshot.Labs))

	if s.sheets == nil {
		return snapshot, nil
	}

	if err = s.sheets.WriteRow(ctx, Row(snapshot)); err != nil {
		return snapshot, fmt.Errorf("export snapshot: %w", err)
	}
	return snapshot, nil
}

// Row formats a snapshot as a spreadsheet row: date, total, available, unavailable, labs.
func Row(snapshot models.InventorySnapshot) []interface{} {
	return []interface{}{
		snapshot.Date.Format(dateLayout),
		snapshot.Total,
		snapshot.Available,
		snapshot.Unavailable,
		snapshot.Labs,
	}
}
