package db

import (
	"context"
	"database/sql"
	"errors"
	"slices"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"

	"fyyur/internal/apperrors"
)

// DB is the record store for venues, artists and shows.
type DB struct {
	Bun *bun.DB
}

func New(bunDB *bun.DB) *DB {
	return &DB{Bun: bunDB}
}

// Ping reports whether the store is reachable.
func (d *DB) Ping(ctx context.Context) error {
	return apperrors.Storage("ping", d.Bun.PingContext(ctx))
}

// inTx runs fn in one transaction. Any error rolls the transaction back and
// is returned typed: failures from fn pass through, the rest become
// StorageErrors.
func (d *DB) inTx(ctx context.Context, op string, fn func(ctx context.Context, tx bun.Tx) error) error {
	err := d.Bun.RunInTx(ctx, nil, fn)
	return apperrors.Storage(op, err)
}

func lookupErr(err error, entity string, id int64, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound(entity, id)
	}
	return apperrors.Storage(op, err)
}

// "!" is the LIKE escape character: unlike a backslash it needs no quoting
// in any of the supported dialects.
var likeEscaper = strings.NewReplacer(`!`, `!!`, `%`, `!%`, `_`, `!_`)

// containsPattern builds a LIKE pattern matching term anywhere, ignoring case.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}

const nameContains = `LOWER(?TableAlias.name) LIKE ? ESCAPE '!'`

// foldsInGo reports whether name search must be done in Go. SQLite's LOWER
// only folds ASCII letters.
func (d *DB) foldsInGo() bool {
	return d.Bun.Dialect().Name() == dialect.SQLite
}

// searchByName narrows q to names containing term unless the dialect cannot
// fold case, in which case filterByName must be applied to the result.
func (d *DB) searchByName(q *bun.SelectQuery, term string) *bun.SelectQuery {
	if d.foldsInGo() {
		return q
	}
	return q.Where(nameContains, containsPattern(term))
}

// filterByName keeps the items whose name contains term, ignoring case.
func filterByName[T any](items []T, name func(*T) string, term string) []T {
	term = strings.ToLower(term)
	return slices.DeleteFunc(items, func(item T) bool {
		return !strings.Contains(strings.ToLower(name(&item)), term)
	})
}

const (
	pqForeignKeyViolation = "23503"
	mysqlRowIsReferenced  = 1451
	mysqlNoReferencedRow  = 1452
)

// isForeignKeyViolation recognises a foreign key failure from any of the
// supported drivers.
func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqForeignKeyViolation
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlRowIsReferenced || myErr.Number == mysqlNoReferencedRow
	}
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// writeErr types a failed write. A foreign key violation becomes the
// ReferentialError built by ref; anything else is a StorageError.
func writeErr(op string, err error, ref func() *apperrors.ReferentialError) error {
	if isForeignKeyViolation(err) {
		return ref()
	}
	return apperrors.Storage(op, err)
}
