package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kaiwei0323/web-steve/internal/domain"
)

func setupMockStore(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *PostgresStore) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock, NewPostgresStore(db)
}

func TestPostgresStoreEnsureSchema(t *testing.T) {
	db, mock, store := setupMockStore(t)
	defer db.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS documents`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE INDEX IF NOT EXISTS idx_documents_collection`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.EnsureSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreFindAll(t *testing.T) {
	db, mock, store := setupMockStore(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"doc_id", "doc"}).
		AddRow("id-1", []byte(`{"deviceName":"NCOX","AI Performance":"16 TOPS"}`)).
		AddRow("id-2", []byte(`{"deviceName":"NCON"}`))

	mock.ExpectQuery(`SELECT doc_id, doc FROM documents`).
		WithArgs(CollectionSpecifications).
		WillReturnRows(rows)

	docs, err := store.FindAll(context.Background(), CollectionSpecifications)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "id-1", docs[0].ID())
	assert.Equal(t, "NCOX", docs[0]["deviceName"])
	assert.Equal(t, "16 TOPS", docs[0]["AI Performance"])
	assert.Equal(t, "id-2", docs[1].ID())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreFindAllQueryError(t *testing.T) {
	db, mock, store := setupMockStore(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT doc_id, doc FROM documents`).
		WithArgs(CollectionSpecifications).
		WillReturnError(errors.New("connection refused"))

	docs, err := store.FindAll(context.Background(), CollectionSpecifications)
	assert.Error(t, err)
	assert.Nil(t, docs)
	assert.Contains(t, err.Error(), "failed to query")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreFindOneByID(t *testing.T) {
	db, mock, store := setupMockStore(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"doc_id", "doc"}).
		AddRow("id-1", []byte(`{"deviceName":"NCOX"}`))

	mock.ExpectQuery(`SELECT doc_id, doc FROM documents WHERE collection = \$1 AND doc_id = \$2`).
		WithArgs(CollectionSpecifications, "id-1").
		WillReturnRows(rows)

	doc, err := store.FindOne(context.Background(), CollectionSpecifications, domain.Document{"_id": "id-1"})
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "id-1", doc.ID())
	assert.Equal(t, "NCOX", doc["deviceName"])

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreFindOneByFieldUsesContainment(t *testing.T) {
	db, mock, store := setupMockStore(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"doc_id", "doc"}).
		AddRow("link-1", []byte(`{"device_id":"id-1","applications":[]}`))

	mock.ExpectQuery(`SELECT doc_id, doc FROM documents WHERE collection = \$1 AND doc @> \$2`).
		WithArgs(CollectionApplications, []byte(`{"device_id":"id-1"}`)).
		WillReturnRows(rows)

	doc, err := store.FindOne(context.Background(), CollectionApplications, domain.Document{"device_id": "id-1"})
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "id-1", doc["device_id"])

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreFindOneMissingIsNilNil(t *testing.T) {
	db, mock, store := setupMockStore(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT doc_id, doc FROM documents`).
		WithArgs(CollectionSpecifications, "nope").
		WillReturnError(sql.ErrNoRows)

	doc, err := store.FindOne(context.Background(), CollectionSpecifications, domain.Document{"_id": "nope"})
	require.NoError(t, err)
	assert.Nil(t, doc)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreInsertOne(t *testing.T) {
	db, mock, store := setupMockStore(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO documents`).
		WithArgs(CollectionSpecifications, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := store.InsertOne(context.Background(), CollectionSpecifications, domain.Document{"deviceName": "NCOX"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreInsertOneKeepsProvidedID(t *testing.T) {
	db, mock, store := setupMockStore(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO documents`).
		WithArgs(CollectionSpecifications, "fixed-id", []byte(`{"deviceName":"NCOX"}`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := store.InsertOne(context.Background(), CollectionSpecifications,
		domain.Document{"_id": "fixed-id", "deviceName": "NCOX"})
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", id)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreDeleteAll(t *testing.T) {
	db, mock, store := setupMockStore(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM documents`).
		WithArgs(CollectionApplications).
		WillReturnResult(sqlmock.NewResult(0, 4))

	deleted, err := store.DeleteAll(context.Background(), CollectionApplications)
	require.NoError(t, err)
	assert.Equal(t, int64(4), deleted)

	require.NoError(t, mock.ExpectationsWereMet())
}
