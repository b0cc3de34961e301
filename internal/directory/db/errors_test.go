package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fyyur/internal/apperrors"
	"fyyur/internal/database"
	"fyyur/internal/models"
)

func TestIsForeignKeyViolation(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"postgres", &pq.Error{Code: pqForeignKeyViolation}, true},
		{"postgres unique", &pq.Error{Code: "23505"}, false},
		{"mysql referenced row", &mysql.MySQLError{Number: mysqlRowIsReferenced}, true},
		{"mysql missing parent", &mysql.MySQLError{Number: mysqlNoReferencedRow}, true},
		{"mysql other", &mysql.MySQLError{Number: 1062}, false},
		{"sqlite", errors.New("constraint failed: FOREIGN KEY constraint failed (787)"), true},
		{"other", errors.New("connection reset"), false},
		{"nil", nil, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isForeignKeyViolation(tc.err))
		})
	}
}

// A show write that slips past the existence checks is still reported as a
// referential failure once the foreign key rejects it.
func TestForeignKeyWriteIsReferential(t *testing.T) {
	ctx := context.Background()
	bunDB, err := database.OpenSQLite(ctx, ":memory:")
	require.NoError(t, err)
	defer bunDB.Close()
	require.NoError(t, database.CreateSchema(ctx, bunDB))

	show := &models.Show{VenueID: 41, ArtistID: 42, StartTime: time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC)}
	_, err = bunDB.NewInsert().Model(show).Exec(ctx)
	require.Error(t, err)

	err = writeErr("insert show", err, func() *apperrors.ReferentialError {
		return &apperrors.ReferentialError{Entity: "show", Reason: "venue 41 or artist 42 no longer exists"}
	})
	assert.True(t, apperrors.IsReferential(err))
	assert.EqualError(t, err, "show: venue 41 or artist 42 no longer exists")

	err = writeErr("insert show", errors.New("disk full"), nil)
	assert.True(t, apperrors.IsStorage(err))
}
