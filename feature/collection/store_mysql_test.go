package collection

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*Store, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return NewStore(gormDB), mock
}

// An unchanged hash must produce zero writes, regardless of dialect. The
// mock only expects the lookup, so any INSERT or UPDATE fails the test.
func TestUpsertUnchangedIssuesNoWrites(t *testing.T) {
	store, mock := setupMockDB(t)

	game := testGame(13, "Catan")
	rows := sqlmock.NewRows([]string{"id", "name", "hash"}).
		AddRow(game.ID, game.Name, game.Hash)
	mock.ExpectQuery("SELECT \\* FROM `games` WHERE id = \\?").WillReturnRows(rows)

	outcome, err := store.Upsert(game)
	assert.NoError(t, err)
	assert.Equal(t, OutcomeUnchanged, outcome)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertChangedHashUpdates(t *testing.T) {
	store, mock := setupMockDB(t)

	game := testGame(13, "Catan")
	rows := sqlmock.NewRows([]string{"id", "name", "hash"}).
		AddRow(game.ID, game.Name, "stalehash")
	mock.ExpectQuery("SELECT \\* FROM `games` WHERE id = \\?").WillReturnRows(rows)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `games` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	outcome, err := store.Upsert(game)
	assert.NoError(t, err)
	assert.Equal(t, OutcomeUpdated, outcome)
	assert.NoError(t, mock.ExpectationsWereMet())
}
