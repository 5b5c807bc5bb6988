package eventstore

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aitlahcen/comptes/pkg/domain/account"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockedStore(t *testing.T) (*GormStore, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	return NewGormStore(db), mock
}

func TestGormStoreAppend(t *testing.T) {
	require := require.New(t)

	store, mock := newMockedStore(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "events"`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "events"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2))
	mock.ExpectCommit()

	stored, err := store.Append(context.Background(), id, 0, []account.Event{
		account.AccountCreated{ID: id, InitialBalance: decimal.RequireFromString("100"), Currency: "USD", Status: account.StatusCreated},
		account.AccountActivated{ID: id, Status: account.StatusActivated},
	})
	require.NoError(err)
	require.Len(stored, 2)
	require.Equal(int64(1), stored[0].Version)
	require.Equal(int64(2), stored[1].Version)
	require.NoError(mock.ExpectationsWereMet())
}

func TestGormStoreAppendVersionConflict(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	store, mock := newMockedStore(t)
	id := uuid.New()

	// The stream already moved to version 3 while this writer expected 0.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "events"`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectRollback()

	_, err := store.Append(context.Background(), id, 0, []account.Event{
		account.AccountCredited{ID: id, Amount: decimal.RequireFromString("10"), Currency: "USD"},
	})
	assert.ErrorIs(err, ErrVersionConflict)
	require.NoError(mock.ExpectationsWereMet())
}

func TestGormStoreRead(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	store, mock := newMockedStore(t)
	id := uuid.New()
	now := time.Now().UTC()

	_, createdPayload, err := Encode(account.AccountCreated{
		ID: id, InitialBalance: decimal.RequireFromString("100"), Currency: "USD", Status: account.StatusCreated,
	})
	require.NoError(err)

	mock.ExpectQuery(`SELECT \* FROM "events" WHERE aggregate_id = \$1 ORDER BY version asc`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "aggregate_id", "version", "event_type", "payload", "created_at"}).
			AddRow(int64(1), id, int64(1), account.EventTypeCreated, createdPayload, now))

	stored, err := store.Read(context.Background(), id)
	require.NoError(err)
	require.Len(stored, 1)
	assert.Equal(int64(1), stored[0].Version)

	decoded, err := stored[0].Event()
	require.NoError(err)
	created, ok := decoded.(account.AccountCreated)
	require.True(ok)
	assert.True(created.InitialBalance.Equal(decimal.RequireFromString("100")))
	require.NoError(mock.ExpectationsWereMet())
}
