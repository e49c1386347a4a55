package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/finanzapp/finanzapp/internal/config"
	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// DB is a *sql.DB that knows which SQL dialect it speaks.
type DB struct {
	*sql.DB
	Driver string
}

func Wrap(db *sql.DB, driver string) *DB {
	return &DB{DB: db, Driver: driver}
}

// Open opens the configured store. SQLite is the default embedded store.
func Open(cfg config.Database) (*DB, error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		return openSQLite(cfg.Path)
	case config.DriverPostgres:
		return openPostgres(cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func openSQLite(path string) (*DB, error) {
	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	if path == ":memory:" {
		// every new connection would get its own empty in-memory database
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to sqlite database: %w", err)
	}
	log.Infof("Opened sqlite database %s", path)
	return Wrap(db, config.DriverSQLite), nil
}

func openPostgres(cfg config.Database) (*DB, error) {
	// Escape single quotes in password for PostgreSQL connection string
	escapedPassword := strings.ReplaceAll(cfg.Pass, "'", "\\'")

	psqlInfo := fmt.Sprintf("host=%s port=%d user=%s password='%s' dbname=%s sslmode=disable search_path=%s",
		cfg.Host, cfg.Port, cfg.User, escapedPassword, cfg.Name, cfg.Schema)
	connConfig, err := pgx.ParseConfig(psqlInfo)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	db := stdlib.OpenDB(*connConfig)
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Infof("Connected to postgres %s:%d/%s", cfg.Host, cfg.Port, cfg.Name)
	return Wrap(db, config.DriverPostgres), nil
}

// Migrate applies the embedded migrations for the database dialect.
// The migrate instance is not closed because that would close db as well.
func Migrate(db *DB) error {
	var (
		instance   migratedb.Driver
		driverName string
		err        error
	)
	switch db.Driver {
	case config.DriverSQLite:
		driverName = "sqlite"
		instance, err = migratesqlite.WithInstance(db.DB, &migratesqlite.Config{})
	case config.DriverPostgres:
		driverName = "pgx5"
		instance, err = migratepgx.WithInstance(db.DB, &migratepgx.Config{})
	default:
		return fmt.Errorf("unsupported database driver %q", db.Driver)
	}
	if err != nil {
		return fmt.Errorf("failed to create %s migration driver: %w", driverName, err)
	}

	source, err := iofs.New(migrationsFS, "migrations/"+db.Driver)
	if err != nil {
		return fmt.Errorf("failed to create iofs source: %w", err)
	}
	defer source.Close()

	m, err := migrate.NewWithInstance("iofs", source, driverName, instance)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}

	version, dirty, _ := m.Version()
	log.Infof("Database schema at version %d (dirty=%v)", version, dirty)
	return nil
}

// Rebind turns the '?' placeholders used by every repository into the
// numbered placeholders PostgreSQL expects.
func (db *DB) Rebind(query string) string {
	if db.Driver != config.DriverPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
