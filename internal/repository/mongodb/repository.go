package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/mamadbah2/labshare/internal/domain/models"
	"github.com/mamadbah2/labshare/internal/metrics"
)

// Repository defines the materials store operations used by the catalog.
type Repository interface {
	Find(ctx context.Context, filter models.Filter) ([]models.Material, error)
	Insert(ctx context.Context, material models.Material) (primitive.ObjectID, error)
	DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error)
	Ping(ctx context.Context) error
}

// MongoDBRepository implements Repository on top of a single collection.
//
// It does not hold a connection. Every operation dials through the Dialer,
// runs exactly one command and releases the connection before returning,
// whether the command succeeded or not. This costs a handshake and server
// selection per request and can open many connections under load; callers
// that need throughput should put a pooled client behind the Dialer instead.
type MongoDBRepository struct {
	dialer Dialer
	logger *zap.Logger
}

// NewMongoDBRepository creates a repository that acquires connections from dialer.
func NewMongoDBRepository(dialer Dialer, logger *zap.Logger) *MongoDBRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MongoDBRepository{dialer: dialer, logger: logger}
}

// Find returns all materials matching filter, in store order.
func (r *MongoDBRepository) Find(ctx context.Context, filter models.Filter) ([]models.Material, error) {
	materials := []models.Material{}

	err := r.withCollection(ctx, "find", func(coll *mongo.Collection) error {
		cur, err := coll.Find(ctx, toBSON(filter))
		if err != nil {
			return err
		}
		defer cur.Close(ctx)

		return cur.All(ctx, &materials)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find materials: %w", err)
	}
	return materials, nil
}

// Insert stores material and returns the identifier assigned on insert.
func (r *MongoDBRepository) Insert(ctx context.Context, material models.Material) (primitive.ObjectID, error) {
	material.ID = primitive.NilObjectID

	var id primitive.ObjectID
	err := r.withCollection(ctx, "insert", func(coll *mongo.Collection) error {
		res, err := coll.InsertOne(ctx, material)
		if err != nil {
			return err
		}
		oid, ok := res.InsertedID.(primitive.ObjectID)
		if !ok {
			return fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
		}
		id = oid
		return nil
	})
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to insert material: %w", err)
	}
	return id, nil
}

// DeleteByID removes at most one material and returns how many were deleted.
func (r *MongoDBRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error) {
	var deleted int64
	err := r.withCollection(ctx, "delete", func(coll *mongo.Collection) error {
		res, err := coll.DeleteOne(ctx, toBSON(models.ByID(id)))
		if err != nil {
			return err
		}
		deleted = res.DeletedCount
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete material %s: %w", id.Hex(), err)
	}
	return deleted, nil
}

// Ping verifies that a connection can be established and the server answers.
func (r *MongoDBRepository) Ping(ctx context.Context) error {
	err := r.withCollection(ctx, "ping", func(coll *mongo.Collection) error {
		return coll.Database().Client().Ping(ctx, nil)
	})
	if err != nil {
		return fmt.Errorf("failed to ping mongodb: %w", err)
	}
	return nil
}

// withCollection dials, runs fn and always releases the connection.
func (r *MongoDBRepository) withCollection(ctx context.Context, op string, fn func(*mongo.Collection) error) (err error) {
	start := time.Now()
	defer func() {
		metrics.StoreOperationsTotal.WithLabelValues(op, metrics.Outcome(err)).Inc()
		metrics.StoreOperationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
		r.logger.Debug("store operation finished",
			zap.String("op", op),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
	}()

	coll, release, err := r.dialer.Dial(ctx)
	if err != nil {
		return err
	}
	defer func() {
		// The caller's context may already be cancelled; release regardless.
		if relErr := release(context.WithoutCancel(ctx)); relErr != nil {
			err = errors.Join(err, fmt.Errorf("release connection: %w", relErr))
		}
	}()

	return fn(coll)
}

func toBSON(filter models.Filter) bson.M {
	if filter == nil {
		return bson.M{}
	}
	return bson.M(filter)
}
