package markers

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/mapboard/internal/server/models"
)

const (
	listQuery   = `(?s)^SELECT\s+id,\s*latitude,\s*longitude,\s*title,\s*owner\s+FROM\s+markers\s+WHERE\s+owner\s*=\s*\$1$`
	insertQuery = `(?s)^INSERT\s+INTO\s+markers\s*\(id,\s*latitude,\s*longitude,\s*title,\s*owner\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)$`
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresRepository(db), mock
}

func TestList(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	rows := sqlmock.NewRows([]string{"id", "latitude", "longitude", "title", "owner"}).
		AddRow("m1", 28.6139, 77.2090, "Delhi", "alice")
	mock.ExpectQuery(listQuery).WithArgs("alice").WillReturnRows(rows)

	got, err := repo.List(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, &models.Marker{
		ID:       "m1",
		Position: models.Position{28.6139, 77.2090},
		Title:    "Delhi",
		Owner:    "alice",
	}, got[0])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_Empty(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(listQuery).WithArgs("bob").
		WillReturnRows(sqlmock.NewRows([]string{"id", "latitude", "longitude", "title", "owner"}))

	got, err := repo.List(context.Background(), "bob")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestList_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(listQuery).WithArgs("alice").WillReturnError(errors.New("timeout"))

	_, err := repo.List(context.Background(), "alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db error")
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(insertQuery).
		WithArgs("m1", 1.5, -2.25, "Spot", "alice").
		WillReturnResult(sqlmock.NewResult(0, 1))

	m := &models.Marker{ID: "m1", Position: models.Position{1.5, -2.25}, Title: "Spot", Owner: "alice"}
	got, err := repo.Create(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, m, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(insertQuery).
		WithArgs("m1", 1.5, -2.25, "Spot", "alice").
		WillReturnError(errors.New("boom"))

	_, err := repo.Create(context.Background(), &models.Marker{ID: "m1", Position: models.Position{1.5, -2.25}, Title: "Spot", Owner: "alice"})
	require.Error(t, err)
}
