package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kaiwei0323/web-steve/internal/domain"
)

func TestMemoryStoreInsertAssignsID(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	id, err := store.InsertOne(ctx, CollectionSpecifications, domain.Document{"deviceName": "NCOX"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	docs, err := store.FindAll(ctx, CollectionSpecifications)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, id, docs[0].ID())
}

func TestMemoryStoreKeepsProvidedID(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	id, err := store.InsertOne(ctx, CollectionSpecifications, domain.Document{"_id": "fixed-id", "deviceName": "NCON"})
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", id)

	doc, err := store.FindOne(ctx, CollectionSpecifications, domain.Document{"_id": "fixed-id"})
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "NCON", doc["deviceName"])
}

func TestMemoryStoreFindOneByField(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.InsertOne(ctx, CollectionApplications, domain.Document{"device_id": "a", "deviceName": "NCOX"})
	require.NoError(t, err)
	_, err = store.InsertOne(ctx, CollectionApplications, domain.Document{"device_id": "b", "deviceName": "NCON"})
	require.NoError(t, err)

	doc, err := store.FindOne(ctx, CollectionApplications, domain.Document{"device_id": "b"})
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "NCON", doc["deviceName"])
}

func TestMemoryStoreFindOneMissingIsNilNil(t *testing.T) {
	store := NewMemoryStore()

	doc, err := store.FindOne(context.Background(), CollectionSpecifications, domain.Document{"_id": "nope"})
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestMemoryStoreFindAllPreservesInsertionOrder(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for _, name := range []string{"NCOX", "NCON", "PSON"} {
		_, err := store.InsertOne(ctx, CollectionSpecifications, domain.Document{"deviceName": name})
		require.NoError(t, err)
	}

	docs, err := store.FindAll(ctx, CollectionSpecifications)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "NCOX", docs[0]["deviceName"])
	assert.Equal(t, "NCON", docs[1]["deviceName"])
	assert.Equal(t, "PSON", docs[2]["deviceName"])
}

func TestMemoryStoreDeleteAll(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.InsertOne(ctx, CollectionSpecifications, domain.Document{"deviceName": "NCOX"})
	require.NoError(t, err)
	_, err = store.InsertOne(ctx, CollectionSpecifications, domain.Document{"deviceName": "NCON"})
	require.NoError(t, err)

	deleted, err := store.DeleteAll(ctx, CollectionSpecifications)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	docs, err := store.FindAll(ctx, CollectionSpecifications)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestMemoryStoreIsolatesCallers(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	src := domain.Document{"deviceName": "NCOX", "specs": map[string]any{"weight": "650g"}}
	id, err := store.InsertOne(ctx, CollectionSpecifications, src)
	require.NoError(t, err)

	// mutating the inserted document must not touch the stored copy
	src["deviceName"] = "HACKED"

	doc, err := store.FindOne(ctx, CollectionSpecifications, domain.Document{"_id": id})
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "NCOX", doc["deviceName"])

	// mutating a read result must not touch the stored copy either
	doc["deviceName"] = "ALSO HACKED"
	again, err := store.FindOne(ctx, CollectionSpecifications, domain.Document{"_id": id})
	require.NoError(t, err)
	assert.Equal(t, "NCOX", again["deviceName"])
}
