package sqltable

import (
	"context"
	"database/sql"
	"testing"

	"github.com/domonda/go-types/date"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/verisms/datatable"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`
		CREATE TABLE activations (
			id INTEGER PRIMARY KEY,
			service TEXT NOT NULL,
			price REAL,
			created TEXT
		);
		INSERT INTO activations VALUES
			(1, 'Telegram', 0.25, '2025-01-06'),
			(2, 'Uber', NULL, '2025-02-11'),
			(3, 'Discord', 1.5, NULL);
	`)
	require.NoError(t, err)
	return db
}

func TestReadView(t *testing.T) {
	db := openTestDB(t)
	columns := []datatable.Column{
		{Key: "id", Sortable: true},
		{Key: "service", Sortable: true},
		{Key: "price", Sortable: true},
		{Key: "created_at", Title: "Created", Type: datatable.ColumnTypeDate},
	}

	view, err := ReadView(context.Background(), db, "Activations", columns,
		"SELECT id, service, price, created FROM activations WHERE id <= ? ORDER BY id", 3)
	require.NoError(t, err)
	require.Equal(t, "Activations", view.Title())
	require.Equal(t, 3, view.NumRows())

	require.Equal(t, int64(1), view.Cell(0, 0))
	require.Equal(t, "Telegram", view.Cell(0, 1))
	require.Equal(t, 0.25, view.Cell(0, 2))
	require.Equal(t, date.Date("2025-01-06"), view.Cell(0, 3))
	require.Nil(t, view.Cell(1, 2), "NULL")
	require.Nil(t, view.Cell(2, 3), "NULL")
	require.Equal(t, "3", view.RowID(2))

	result := datatable.Apply(view, datatable.Query{Sort: datatable.SortState{Column: "price", Direction: datatable.Descending}})
	require.Equal(t, []string{"3", "1", "2"}, result.RowIDs())
}

func TestReadView_Error(t *testing.T) {
	_, err := ReadView(context.Background(), openTestDB(t), "", nil, "SELECT * FROM missing")
	require.Error(t, err)
}

func TestScanRows_Canceled(t *testing.T) {
	db := openTestDB(t)
	rows, err := db.Query("SELECT id FROM activations")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = ScanRows(ctx, rows, nil)
	require.ErrorIs(t, err, context.Canceled)
}
