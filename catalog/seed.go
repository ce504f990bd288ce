package catalog

import (
	"encoding/json"
	"os"

	"shoplist-server/core"

	"github.com/sirupsen/logrus"
)

// LoadSeed reads the product catalog seed file, a JSON array of products,
// and returns a snapshot seeded with it. A missing or unconfigured seed is
// not an error; the caller falls through to an empty state.
func LoadSeed(path string) (*core.Snapshot, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logrus.WithField("path", path).Warn("Seed file not found, starting empty")
			return nil, nil
		}
		return nil, err
	}

	var products []*core.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, err
	}

	snap := core.NewSnapshot()
	for _, product := range products {
		snap.Products[product.ID] = product
	}
	logrus.WithFields(logrus.Fields{
		"path":     path,
		"products": len(snap.Products),
	}).Info("Product catalog seeded")
	return snap, nil
}
