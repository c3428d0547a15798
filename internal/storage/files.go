package storage

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tidwall/jsonc"

	"github.com/jwebster45206/schematic-engine/pkg/schematic"
)

//go:embed schematic.schema.json
var schemaJSON string

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return jsonschema.CompileString("schematic.schema.json", schemaJSON)
})

// FileStorage reads schematic files from a data directory.
type FileStorage struct {
	logger  *slog.Logger
	dataDir string
}

var _ Schematics = (*FileStorage)(nil)

func NewFileStorage(dataDir string, logger *slog.Logger) *FileStorage {
	if dataDir == "" {
		dataDir = "./data/schematics"
	}
	return &FileStorage{logger: logger, dataDir: dataDir}
}

func (f *FileStorage) ListSchematics(ctx context.Context) ([]string, error) {
	var files []string

	err := filepath.WalkDir(f.dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == f.dataDir {
				return err
			}
			f.logger.Warn("Failed to read schematic directory entry", "path", path, "error", err)
			return nil
		}
		if d.IsDir() || !Supported(path) {
			return nil
		}

		rel, err := filepath.Rel(f.dataDir, path)
		if err != nil {
			return nil
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})

	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		f.logger.Error("Failed to walk schematics directory", "error", err)
		return nil, fmt.Errorf("failed to list schematics: %w", err)
	}

	slices.Sort(files)
	return files, nil
}

func (f *FileStorage) GetSchematic(ctx context.Context, filename string) (*schematic.Data, error) {
	if !filepath.IsLocal(filename) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, filename)
	}
	path := filepath.Join(f.dataDir, filename)
	f.logger.Debug("Loading schematic", "filename", filename, "full_path", path)

	data, err := ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, filename)
		}
		return nil, err
	}
	return data, nil
}

// Supported reports whether name has a schematic file extension:
// .json, .jsonc, or either followed by .zst.
func Supported(name string) bool {
	name = strings.TrimSuffix(strings.ToLower(name), ".zst")
	ext := filepath.Ext(name)
	return ext == ".json" || ext == ".jsonc"
}

// ReadFile loads and validates a schematic file of any supported format.
func ReadFile(path string) (*schematic.Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schematic file: %w", err)
	}
	data, err := Decode(filepath.Base(path), raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// Decode parses raw according to the extension of name, validates it
// against the schematic schema and returns the document. Property numbers
// are kept as json.Number.
func Decode(name string, raw []byte) (*schematic.Data, error) {
	lower := strings.ToLower(name)

	switch {
	case strings.HasSuffix(lower, ".zst"):
		inner, err := decompress(raw)
		if err != nil {
			return nil, err
		}
		return Decode(name[:len(name)-len(".zst")], inner)
	case filepath.Ext(lower) == ".jsonc":
		raw = jsonc.ToJSON(raw)
	case filepath.Ext(lower) == ".json":
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}

	if err := Validate(raw); err != nil {
		return nil, err
	}

	var data schematic.Data
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSchematic, err)
	}
	return &data, nil
}

// Validate checks plain JSON against the schematic schema.
func Validate(raw []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("failed to compile schematic schema: %w", err)
	}

	var doc any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSchematic, err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSchematic, err)
	}
	return nil
}

// Compress zstd-encodes a schematic file body.
func Compress(raw []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(raw, nil), nil
}

func decompress(raw []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	out, err := dec.DecodeAll(raw, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: zstd: %v", ErrInvalidSchematic, err)
	}
	return out, nil
}
