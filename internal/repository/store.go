package repository

import (
	"context"

	"github.com/Kaiwei0323/web-steve/internal/domain"
)

// Collection names used across every store implementation.
const (
	CollectionSpecifications = "device_specifications"
	CollectionApplications   = "device_applications"
)

// Collections lists every collection the tools dump and restore.
var Collections = []string{CollectionSpecifications, CollectionApplications}

// DocumentStore is the contract over the device document collections.
// Reads return documents whose "_id" is already a plain string, whatever
// identifier type the backend uses natively.
type DocumentStore interface {
	// FindAll returns every document of a collection in the store's
	// natural order.
	FindAll(ctx context.Context, collection string) ([]domain.Document, error)
	// FindOne returns the first document matching every filter field, or
	// (nil, nil) when nothing matches.
	FindOne(ctx context.Context, collection string, filter domain.Document) (domain.Document, error)
	// InsertOne stores a document and returns its assigned identifier.
	InsertOne(ctx context.Context, collection string, doc domain.Document) (string, error)
	// DeleteAll removes every document of a collection and returns the
	// removed count.
	DeleteAll(ctx context.Context, collection string) (int64, error)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
