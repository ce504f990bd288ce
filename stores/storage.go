package stores

import (
	"context"
	"os"

	"shoplist-server/stores/aws"
	"shoplist-server/stores/filesystem"
	"shoplist-server/stores/memory"
	"shoplist-server/stores/sqlite"

	"github.com/sirupsen/logrus"
)

// Backend persists the serialized snapshot document. Load returns (nil, nil)
// when no snapshot has ever been saved; Save replaces the previous snapshot
// wholesale.
type Backend interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// GetBackend selects a snapshot backend from the STORAGE_TYPE environment
// variable. The in-memory backend is the default and keeps nothing across
// restarts.
func GetBackend() Backend {
	storageType := os.Getenv("STORAGE_TYPE")
	var backend Backend

	storageField := logrus.Fields{
		"storageType": storageType,
	}

	switch storageType {
	case "filesystem":
		basePath := os.Getenv("LOCAL_STORAGE_PATH")
		if basePath == "" {
			basePath = "./data"
		}
		storageField["basePath"] = basePath
		backend = filesystem.NewBackend(basePath)
	case "sqlite":
		dataSourceName := os.Getenv("DATA_SOURCE_NAME")
		if dataSourceName == "" {
			dataSourceName = "shoplist.db"
		}
		storageField["dataSourceName"] = dataSourceName
		backend = sqlite.NewBackend(dataSourceName)
	case "s3":
		bucketName := os.Getenv("S3_BUCKET_NAME")
		if bucketName == "" {
			logrus.Fatal("S3_BUCKET_NAME environment variable must be set for s3 storage type")
		}
		storageField["bucketName"] = bucketName
		backend = aws.NewBackend(bucketName)
	default:
		backend = memory.NewBackend()
		storageField["storageType"] = "in-memory"
	}
	logrus.WithFields(storageField).Info("Use snapshot storage")
	return backend
}
