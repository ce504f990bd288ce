package filesystem

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

const snapshotFile = "snapshot.json"

type fsBackend struct {
	basePath string
}

// NewBackend creates a filesystem snapshot backend rooted at basePath.
func NewBackend(basePath string) *fsBackend {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		log.Fatalf("failed to create base directory: %v", err)
	}
	return &fsBackend{basePath: basePath}
}

func (b *fsBackend) path() string {
	return filepath.Join(b.basePath, snapshotFile)
}

func (b *fsBackend) Load(ctx context.Context) ([]byte, error) {
	filePath := b.path()
	log := logrus.WithField("file_path", filePath)

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Info("No snapshot file found")
			return nil, nil
		}
		log.WithError(err).Error("Failed to read snapshot file")
		return nil, err
	}

	log.WithField("size", len(data)).Info("Snapshot loaded")
	return data, nil
}

// Save writes the snapshot atomically: a temp file in the same directory is
// renamed over the previous snapshot so a crash mid-write never leaves a
// truncated document behind.
func (b *fsBackend) Save(ctx context.Context, data []byte) error {
	filePath := b.path()
	log := logrus.WithFields(logrus.Fields{
		"file_path": filePath,
		"size":      len(data),
	})

	tmp, err := os.CreateTemp(b.basePath, snapshotFile+".tmp-*")
	if err != nil {
		log.WithError(err).Error("Failed to create temp snapshot file")
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		log.WithError(err).Error("Failed to write snapshot data")
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		log.WithError(err).Error("Failed to close temp snapshot file")
		return err
	}

	if err := os.Rename(tmpName, filePath); err != nil {
		os.Remove(tmpName)
		log.WithError(err).Error("Failed to replace snapshot file")
		return err
	}

	log.Debug("Snapshot saved")
	return nil
}
