package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"fyyur/internal/config"
	"fyyur/internal/models"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

// mysqlDuplicateKeyName is returned by CREATE INDEX for an existing index.
const mysqlDuplicateKeyName = 1061

// Open connects to the configured store and verifies the connection.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*bun.DB, error) {
	switch cfg.Driver {
	case DriverPostgres:
		sqldb, err := sql.Open("postgres", cfg.DSN())
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
		sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
		sqldb.SetConnMaxLifetime(cfg.MaxLifetime)

		if err := sqldb.PingContext(ctx); err != nil {
			sqldb.Close()
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		return bun.NewDB(sqldb, pgdialect.New()), nil

	case DriverMySQL:
		mycfg := mysql.NewConfig()
		mycfg.User = cfg.Username
		mycfg.Passwd = cfg.Password
		mycfg.Net = "tcp"
		mycfg.Addr = net.JoinHostPort(cfg.Host, cfg.Port)
		mycfg.DBName = cfg.Database
		mycfg.ParseTime = true
		mycfg.Loc = time.UTC

		connector, err := mysql.NewConnector(mycfg)
		if err != nil {
			return nil, fmt.Errorf("open mysql: %w", err)
		}
		sqldb := sql.OpenDB(connector)
		sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
		sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
		sqldb.SetConnMaxLifetime(cfg.MaxLifetime)

		if err := sqldb.PingContext(ctx); err != nil {
			sqldb.Close()
			return nil, fmt.Errorf("connect to mysql: %w", err)
		}
		return bun.NewDB(sqldb, mysqldialect.New()), nil

	case DriverSQLite:
		return OpenSQLite(ctx, cfg.SQLitePath)

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// OpenSQLite opens a SQLite file (or ":memory:"). SQLite serialises writers
// anyway, so the pool is pinned to one long-lived connection; that also keeps
// an in-memory database and the foreign_keys pragma alive.
func OpenSQLite(ctx context.Context, path string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqldb.SetMaxOpenConns(1)
	sqldb.SetMaxIdleConns(1)
	sqldb.SetConnMaxLifetime(0)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable sqlite foreign keys: %w", err)
	}
	return db, nil
}

// CreateSchema creates the venue, artist and show tables when missing. It is
// used for SQLite, MySQL and tests; Postgres deployments run the SQL
// migrations.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	for _, model := range []any{(*models.Venue)(nil), (*models.Artist)(nil)} {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("create table: %w", err)
		}
	}

	_, err := db.NewCreateTable().
		Model((*models.Show)(nil)).
		IfNotExists().
		ForeignKey(`(?) REFERENCES ? (?) ON DELETE RESTRICT`, bun.Ident("venue_id"), bun.Ident("venues"), bun.Ident("id")).
		ForeignKey(`(?) REFERENCES ? (?) ON DELETE RESTRICT`, bun.Ident("artist_id"), bun.Ident("artists"), bun.Ident("id")).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create table shows: %w", err)
	}

	for _, stmt := range columnFixups(db.Dialect().Name()) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("adjust column: %w", err)
		}
	}

	indexes := []struct {
		model  any
		name   string
		column string
	}{
		{(*models.Show)(nil), "shows_venue_id_idx", "venue_id"},
		{(*models.Show)(nil), "shows_artist_id_idx", "artist_id"},
		{(*models.Venue)(nil), "venues_city_state_idx", "city, state"},
	}
	isMySQL := db.Dialect().Name() == dialect.MySQL
	for _, idx := range indexes {
		q := db.NewCreateIndex().
			Model(idx.model).
			Index(idx.name).
			ColumnExpr(idx.column)
		if !isMySQL {
			q = q.IfNotExists()
		}
		if _, err := q.Exec(ctx); err != nil && !isDuplicateIndex(err) {
			return fmt.Errorf("create index %s: %w", idx.name, err)
		}
	}
	return nil
}

// columnFixups returns the statements that bring bun's default column types
// up to what the store needs on dialect d. MySQL's plain DATETIME keeps whole
// seconds only, so start times get microsecond precision. Each statement is
// safe to re-run.
func columnFixups(d dialect.Name) []string {
	if d == dialect.MySQL {
		return []string{"ALTER TABLE `shows` MODIFY `start_time` DATETIME(6) NOT NULL"}
	}
	return nil
}

// isDuplicateIndex reports MySQL's answer to re-creating an index, which
// has no IF NOT EXISTS form.
func isDuplicateIndex(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlDuplicateKeyName
}
