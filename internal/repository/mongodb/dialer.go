package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ReleaseFunc closes whatever a Dialer opened.
type ReleaseFunc func(ctx context.Context) error

// Dialer hands out a collection handle scoped to a single store operation.
type Dialer interface {
	Dial(ctx context.Context) (*mongo.Collection, ReleaseFunc, error)
}

// URIDialer connects a fresh client for every Dial and disconnects it on release.
type URIDialer struct {
	URI            string
	DBName         string
	Collection     string
	ConnectTimeout time.Duration
}

// Dial connects to the deployment and returns the configured collection.
func (d URIDialer) Dial(ctx context.Context) (*mongo.Collection, ReleaseFunc, error) {
	clientOptions := options.Client().
		ApplyURI(d.URI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	if d.ConnectTimeout > 0 {
		clientOptions.SetConnectTimeout(d.ConnectTimeout).SetServerSelectionTimeout(d.ConnectTimeout)
	}

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	coll := client.Database(d.DBName).Collection(d.Collection)
	return coll, client.Disconnect, nil
}
