package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

const (
	// DriverMattn is the cgo SQLite driver and the default for local files.
	DriverMattn = "sqlite3"
	// DriverModernc is the pure Go SQLite driver.
	DriverModernc = "sqlite"
	driverLibsql  = "libsql"

	memoryPath = ":memory:"
)

// ErrBackupUnsupported is returned when the store is not a plain local file.
var ErrBackupUnsupported = errors.New("backup and restore require a local database file")

// InitDB opens the database and applies the embedded migrations. A non-empty primaryUrl selects
// a remote libsql database and ignores dbPath and driver. The returned teardown closes the
// connection pool.
func InitDB(driver, dbPath, primaryUrl, authToken string) (*sql.DB, func(), error) {
	var (
		db  *sql.DB
		err error
	)
	if primaryUrl == "" {
		if driver == "" {
			driver = DriverMattn
		}
		if driver != DriverMattn && driver != DriverModernc {
			return nil, nil, fmt.Errorf("unsupported database driver %q", driver)
		}
		if dbPath != memoryPath {
			if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
				return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
			}
		}
		log.Info("Initializing local-only SQLite database", "path", dbPath, "driver", driver)
		db, err = sql.Open(driver, dbPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open local database: %w", err)
		}
		if dbPath == memoryPath {
			// Every pooled connection to :memory: would get its own empty database.
			db.SetMaxOpenConns(1)
		}
	} else {
		log.Info("Initializing Turso database", "url", primaryUrl)
		db, err = sql.Open(driverLibsql, primaryUrl+"?authToken="+authToken)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open db %s: %w", primaryUrl, err)
		}
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err = migrate(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	teardown := func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}
	return db, teardown, nil
}

func migrate(db *sql.DB) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(log.Default())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return err
	}
	log.Info("Database initialized successfully")
	return nil
}

// Backup writes a byte-for-byte copy of the database file to w.
func Backup(dbPath string, w io.Writer) (int64, error) {
	if dbPath == "" || dbPath == memoryPath {
		return 0, ErrBackupUnsupported
	}
	f, err := os.Open(dbPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open database file: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(w, f)
	if err != nil {
		return n, fmt.Errorf("failed to copy database file: %w", err)
	}
	log.Info("Database backup written", "path", dbPath, "bytes", n)
	return n, nil
}

// Restore replaces the database file with the bytes read from r. The content is not validated:
// whatever was uploaded becomes the new store. No connection may be open on dbPath.
func Restore(dbPath string, r io.Reader) (int64, error) {
	if dbPath == "" || dbPath == memoryPath {
		return 0, ErrBackupUnsupported
	}
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create data directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(dbPath)+".restore-*")
	if err != nil {
		return 0, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return n, fmt.Errorf("failed to write database file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return n, fmt.Errorf("failed to write database file: %w", err)
	}
	if err := os.Rename(tmp.Name(), dbPath); err != nil {
		return n, fmt.Errorf("failed to replace database file: %w", err)
	}
	log.Info("Database restored", "path", dbPath, "bytes", n)
	return n, nil
}
