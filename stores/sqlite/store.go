package sqlite

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

type sqliteBackend struct {
	db *sql.DB
}

// NewBackend creates a SQLite snapshot backend. The snapshot is a single
// row that gets replaced on every save.
func NewBackend(dataSourceName string) *sqliteBackend {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		log.Fatalf("failed to open sqlite database: %v", err)
	}

	stmt := `
	CREATE TABLE IF NOT EXISTS snapshots (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		data BLOB NOT NULL,
		saved_at DATETIME NOT NULL
	);`
	if _, err = db.Exec(stmt); err != nil {
		log.Fatalf("failed to create snapshots table: %v", err)
	}

	return &sqliteBackend{db}
}

func (b *sqliteBackend) Load(ctx context.Context) ([]byte, error) {
	var data []byte
	err := b.db.QueryRowContext(ctx, "SELECT data FROM snapshots WHERE id = 1").Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			logrus.Info("No snapshot row found")
			return nil, nil
		}
		logrus.WithError(err).Error("Failed to load snapshot")
		return nil, err
	}
	logrus.WithField("size", len(data)).Info("Snapshot loaded")
	return data, nil
}

func (b *sqliteBackend) Save(ctx context.Context, data []byte) error {
	_, err := b.db.ExecContext(ctx,
		`INSERT INTO snapshots (id, data, saved_at) VALUES (1, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET data = excluded.data, saved_at = excluded.saved_at`,
		data, time.Now())
	if err != nil {
		logrus.WithError(err).Error("Failed to save snapshot")
		return err
	}
	logrus.WithField("size", len(data)).Debug("Snapshot saved")
	return nil
}
