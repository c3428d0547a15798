package report

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jwebster45206/schematic-engine/internal/storage"
	"github.com/jwebster45206/schematic-engine/pkg/schematic"
)

// Load reads name as a file path, or as a schematic in files when no such
// file exists.
func Load(ctx context.Context, files storage.Schematics, name string) (*schematic.Data, error) {
	if _, err := os.Stat(name); err == nil {
		return storage.ReadFile(name)
	} else if !errors.Is(err, fs.ErrNotExist) || files == nil {
		return nil, err
	}
	return files.GetSchematic(ctx, name)
}

// InstanceName derives an instance name from a schematic file name.
func InstanceName(name string) string {
	base := filepath.Base(name)
	for _, ext := range []string{".zst", ".jsonc", ".json"} {
		if strings.HasSuffix(strings.ToLower(base), ext) {
			base = base[:len(base)-len(ext)]
		}
	}
	return base
}
