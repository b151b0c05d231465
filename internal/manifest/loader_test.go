package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/parquet-go/parquet-go"
)

func TestNewLoader(t *testing.T) {
	path := "./listing.jsonl"
	loader := NewLoader(path)

	if loader.manifestPath != path {
		t.Errorf("Expected path %s, got %s", path, loader.manifestPath)
	}
}

func TestLoadJSONL(t *testing.T) {
	tmpDir := t.TempDir()
	jsonlPath := filepath.Join(tmpDir, "listing.jsonl")

	testData := `{"key":"letters/box1/letter1.jpg","size":1024}

{"key":"letters/box1/letter2.jpg","size":2048}
{"key":"letters/box2/photo1.tif"}
`
	if err := os.WriteFile(jsonlPath, []byte(testData), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	loader := NewLoader(jsonlPath)

	objects, err := loader.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(objects) != 3 {
		t.Fatalf("Expected 3 objects, got %d", len(objects))
	}
	if objects[1].Key != "letters/box1/letter2.jpg" || objects[1].Size != 2048 {
		t.Errorf("Unexpected object: %+v", objects[1])
	}

	sample, err := loader.LoadSample(2)
	if err != nil {
		t.Fatalf("LoadSample failed: %v", err)
	}
	if len(sample) != 2 {
		t.Errorf("Expected 2 objects, got %d", len(sample))
	}
}

func TestLoadJSONLMalformedLine(t *testing.T) {
	jsonlPath := filepath.Join(t.TempDir(), "listing.jsonl")
	if err := os.WriteFile(jsonlPath, []byte("{\"key\":\"a.jpg\"}\n{not json}\n"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if _, err := NewLoader(jsonlPath).Load(); err == nil {
		t.Error("Expected error for malformed line, got nil")
	}
}

func TestLoadJSONArray(t *testing.T) {
	jsonPath := filepath.Join(t.TempDir(), "listing.json")
	testData := `[
  "letters/box1/letter1.jpg",
  {"key": "letters/box1/letter2.jpg", "size": 2048},
  {"key": "letters/box2/photo1.tif"}
]`
	if err := os.WriteFile(jsonPath, []byte(testData), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	objects, err := NewLoader(jsonPath).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(objects) != 3 {
		t.Fatalf("Expected 3 objects, got %d", len(objects))
	}
	if objects[0].Key != "letters/box1/letter1.jpg" {
		t.Errorf("Expected bare key, got %s", objects[0].Key)
	}
	if objects[1].Size != 2048 {
		t.Errorf("Expected size 2048, got %d", objects[1].Size)
	}

	sample, err := NewLoader(jsonPath).LoadSample(2)
	if err != nil {
		t.Fatalf("LoadSample failed: %v", err)
	}
	if len(sample) != 2 {
		t.Errorf("Expected 2 objects, got %d", len(sample))
	}
}

func TestLoadJSONRejectsLines(t *testing.T) {
	jsonPath := filepath.Join(t.TempDir(), "listing.json")
	if err := os.WriteFile(jsonPath, []byte("{\"key\":\"a.jpg\"}\n{\"key\":\"b.jpg\"}\n"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	_, err := NewLoader(jsonPath).Load()
	if err == nil || !strings.Contains(err.Error(), "expected an array") {
		t.Errorf("Expected array error, got %v", err)
	}
}

func TestLoadYAML(t *testing.T) {
	yamlPath := filepath.Join(t.TempDir(), "listing.yaml")
	testData := `- letters/box1/letter1.jpg
- key: letters/box1/letter2.jpg
  size: 10
- letters/box2/photo1.tif
`
	if err := os.WriteFile(yamlPath, []byte(testData), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	objects, err := NewLoader(yamlPath).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(objects) != 3 {
		t.Fatalf("Expected 3 objects, got %d", len(objects))
	}
	if objects[0].Key != "letters/box1/letter1.jpg" {
		t.Errorf("Expected bare key, got %s", objects[0].Key)
	}
	if objects[1].Size != 10 {
		t.Errorf("Expected size 10, got %d", objects[1].Size)
	}

	sample, err := NewLoader(yamlPath).LoadSample(1)
	if err != nil {
		t.Fatalf("LoadSample failed: %v", err)
	}
	if len(sample) != 1 {
		t.Errorf("Expected 1 object, got %d", len(sample))
	}
}

func TestLoadParquet(t *testing.T) {
	parquetPath := filepath.Join(t.TempDir(), "inventory.parquet")

	rows := make([]Object, 300)
	for i := range rows {
		rows[i] = Object{Key: "letters/scan" + string(rune('a'+i%26)) + ".jpg", Size: int64(i)}
	}
	if err := parquet.WriteFile(parquetPath, rows); err != nil {
		t.Fatalf("Failed to write parquet file: %v", err)
	}

	objects, err := NewLoader(parquetPath).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(objects) != len(rows) {
		t.Fatalf("Expected %d objects, got %d", len(rows), len(objects))
	}
	if objects[299].Size != 299 || objects[0].Key != rows[0].Key {
		t.Errorf("Unexpected objects: %+v ... %+v", objects[0], objects[299])
	}

	sample, err := NewLoader(parquetPath).LoadSample(130)
	if err != nil {
		t.Fatalf("LoadSample failed: %v", err)
	}
	if len(sample) != 130 {
		t.Errorf("Expected 130 objects, got %d", len(sample))
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	loader := NewLoader("listing.txt")

	if _, err := loader.Load(); err == nil {
		t.Error("Expected error for unsupported format, got nil")
	}
	if _, err := loader.LoadSample(10); err == nil {
		t.Error("Expected error for unsupported format in LoadSample, got nil")
	}
}

func TestLoadNonExistentFile(t *testing.T) {
	for _, path := range []string{"/nonexistent/listing.jsonl", "/nonexistent/listing.yaml", "/nonexistent/listing.parquet"} {
		if _, err := NewLoader(path).Load(); err == nil {
			t.Errorf("Expected error for non-existent file %s, got nil", path)
		}
	}
}
