package database

import (
	"embed"
	"io"
	"log"
	"net/url"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/trezcool/masomo/core"
)

//go:embed migrations
var migrationsFS embed.FS

// goose keeps its base FS and dialect in package state.
var gooseMu sync.Mutex

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

func openPostgres(conf *core.Config) (*sqlx.DB, error) {
	sslMode := "require"
	if conf.Database.DisableTLS {
		sslMode = "disable"
	}
	q := make(url.Values)
	q.Set("sslmode", sslMode)
	q.Set("timezone", "utc")

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(conf.Database.User, conf.Database.Password),
		Host:     conf.Database.Address(),
		Path:     conf.Database.Name,
		RawQuery: q.Encode(),
	}
	return sqlx.Open("postgres", u.String())
}

func openSQLite(conf *core.Config) (*sqlx.DB, error) {
	q := make(url.Values)
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "busy_timeout(5000)")

	db, err := sqlx.Open("sqlite", conf.Database.Path+"?"+q.Encode())
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // sqlite has a single writer
	return db, nil
}

// Open connects to the configured SQL engine (sqlite or postgres) and waits for it to be ready.
func Open(conf *core.Config) (*sqlx.DB, error) {
	var db *sqlx.DB
	var err error

	switch conf.Database.Engine {
	case core.EngineSQLite:
		db, err = openSQLite(conf)
	case core.EnginePostgres:
		db, err = openPostgres(conf)
	default:
		return nil, errors.Errorf("database engine %q is not an SQL engine", conf.Database.Engine)
	}
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}

	if err = ping(db); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "pinging database")
	}
	return db, nil
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(db *sqlx.DB) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
	}

	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}

// MigrationsDir points goose at the embedded migrations of the engine and returns their directory.
func MigrationsDir(engine string) (string, error) {
	var dialect string
	switch engine {
	case core.EngineSQLite:
		dialect = "sqlite3"
	case core.EnginePostgres:
		dialect = "postgres"
	default:
		return "", errors.Errorf("no migrations for database engine %q", engine)
	}

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(log.New(io.Discard, "", 0))
	if err := goose.SetDialect(dialect); err != nil {
		return "", errors.Wrap(err, "setting goose dialect")
	}
	return "migrations/" + engine, nil
}

// Migrate applies every pending migration.
func Migrate(db *sqlx.DB, engine string) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	dir, err := MigrationsDir(engine)
	if err != nil {
		return err
	}
	if err = goose.Up(db.DB, dir); err != nil {
		return errors.Wrap(err, "migrating database")
	}
	return nil
}
