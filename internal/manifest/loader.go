package manifest

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
	"gopkg.in/yaml.v3"
)

// Object is one entry of a storage listing.
type Object struct {
	Key  string `json:"key" parquet:"key" yaml:"key"`
	Size int64  `json:"size" parquet:"size,optional" yaml:"size"`
}

// UnmarshalYAML accepts either a bare key or a mapping with a key.
func (o *Object) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		o.Key = value.Value
		return nil
	}
	type plain Object
	return value.Decode((*plain)(o))
}

// UnmarshalJSON accepts either a bare key string or an object with a key.
func (o *Object) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &o.Key)
	}
	type plain Object
	return json.Unmarshal(data, (*plain)(o))
}

// Loader reads object listings (JSONL, JSON, YAML or Parquet)
type Loader struct {
	manifestPath string
}

// NewLoader creates a new manifest loader
func NewLoader(manifestPath string) *Loader {
	return &Loader{
		manifestPath: manifestPath,
	}
}

// Load reads every object in the listing
func (l *Loader) Load() ([]Object, error) {
	return l.LoadSample(-1)
}

// LoadSample reads at most limit objects; a negative limit reads all of them
func (l *Loader) LoadSample(limit int) ([]Object, error) {
	ext := strings.ToLower(filepath.Ext(l.manifestPath))

	switch ext {
	case ".parquet":
		return l.loadParquet(limit)
	case ".jsonl":
		return l.loadJSONL(limit)
	case ".json":
		return l.loadJSON(limit)
	case ".yaml", ".yml":
		return l.loadYAML(limit)
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: .parquet, .jsonl, .json, .yaml)", ext)
	}
}

func (l *Loader) loadJSONL(limit int) ([]Object, error) {
	slog.Debug("Opening JSONL manifest", "path", l.manifestPath)

	file, err := os.Open(l.manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest file: %w", err)
	}
	defer file.Close()

	var objects []Object
	scanner := bufio.NewScanner(file)

	// Increase buffer size for long keys
	const maxCapacity = 1024 * 1024
	buf := make([]byte, maxCapacity)
	scanner.Buffer(buf, maxCapacity)

	lineNum := 0
	for scanner.Scan() {
		if limit >= 0 && len(objects) >= limit {
			break
		}
		lineNum++
		line := scanner.Bytes()

		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}

		var obj Object
		if err := json.Unmarshal(line, &obj); err != nil {
			return nil, fmt.Errorf("failed to parse JSON at line %d: %w", lineNum, err)
		}

		objects = append(objects, obj)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading manifest: %w", err)
	}

	slog.Debug("Finished reading JSONL manifest", "total_objects", len(objects), "total_lines", lineNum)

	return objects, nil
}

// loadJSON reads a JSON array of keys or objects
func (l *Loader) loadJSON(limit int) ([]Object, error) {
	data, err := os.ReadFile(l.manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest file: %w", err)
	}

	var objects []Object
	if err := json.Unmarshal(data, &objects); err != nil {
		return nil, fmt.Errorf("failed to parse JSON manifest (expected an array): %w", err)
	}

	if limit >= 0 && len(objects) > limit {
		objects = objects[:limit]
	}

	slog.Debug("Finished reading JSON manifest", "total_objects", len(objects))

	return objects, nil
}

func (l *Loader) loadYAML(limit int) ([]Object, error) {
	data, err := os.ReadFile(l.manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest file: %w", err)
	}

	var objects []Object
	if err := yaml.Unmarshal(data, &objects); err != nil {
		return nil, fmt.Errorf("failed to parse YAML manifest: %w", err)
	}

	if limit >= 0 && len(objects) > limit {
		objects = objects[:limit]
	}

	slog.Debug("Finished reading YAML manifest", "total_objects", len(objects))

	return objects, nil
}

// loadParquet reads an inventory listing with at least a "key" column
func (l *Loader) loadParquet(limit int) ([]Object, error) {
	slog.Debug("Opening Parquet manifest", "path", l.manifestPath)

	file, err := os.Open(l.manifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	slog.Debug("Parquet file opened successfully", "num_rows", pf.NumRows(), "num_row_groups", len(pf.RowGroups()))

	reader := parquet.NewGenericReader[Object](pf)
	defer reader.Close()

	var objects []Object
	rows := make([]Object, 128) // Read in batches

	batchNum := 0
	for limit < 0 || len(objects) < limit {
		n, err := reader.Read(rows)
		if n > 0 {
			batchNum++
			if limit >= 0 && n > limit-len(objects) {
				n = limit - len(objects)
			}
			objects = append(objects, rows[:n]...)
			slog.Debug("Read batch from Parquet", "batch", batchNum, "rows_in_batch", n, "total_rows_read", len(objects))
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to read parquet rows: %w", err)
		}
	}

	slog.Debug("Finished reading Parquet manifest", "total_objects", len(objects), "total_batches", batchNum)

	return objects, nil
}
