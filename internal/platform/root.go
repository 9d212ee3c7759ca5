package platform

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/aretw0/docprotocol/pkg/adapters/fs"
)

// ErrRootNotFound is returned by FindRoot when no data directory is found.
var ErrRootNotFound = errors.New("data root not found")

// rootMarkers identify a data directory.
var rootMarkers = []string{fs.DefaultFile, "protocols.json", "protocols.yml"}

// FindRoot walks upwards from startDir looking for a directory holding a
// protocol snapshot and returns its absolute path.
func FindRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		for _, marker := range rootMarkers {
			if hasFile(dir, marker) {
				return dir, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrRootNotFound
		}
		dir = parent
	}
}

func hasFile(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}
