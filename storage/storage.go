package storage

import (
	"fmt"
	"log"

	"github.com/handleme/gallery/config"
)

// NewProvider builds the blob store configured by storage_type.
func NewProvider(cfg *config.Config) (Provider, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = "local"
	}

	log.Printf("Initializing storage, type: %s", storageType)

	switch storageType {
	case "local":
		return newLocalStorage(cfg.StorageLocalPath)
	case "minio":
		return newMinioStorage(cfg)
	case "webdav":
		return newWebDAVStorage(cfg.WebdavURL, cfg.WebdavUsername, cfg.WebdavPassword)
	default:
		return nil, fmt.Errorf("invalid storage type specified in config: %s", storageType)
	}
}
