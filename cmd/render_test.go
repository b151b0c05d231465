package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testListing = `{"key":"letters/"}
{"key":"letters/Dir1/Dir1-1/item1.jpg"}
{"key":"letters/Dir1/item2.jpg"}
{"key":"letters/.thumb/Dir1/item2.jpg"}
{"key":"letters/Dir2/Dir2-1/item3.jpg"}
{"key":"letters/Dir2/item4.jpg"}
`

const testCollection = `title: Family Papers
scope: Letters and photographs.
langs: [eng]
items:
  - identifier: Dir1/item2
    title: Second letter
`

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create %s: %v", name, err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	listing := writeFixture(t, dir, "listing.jsonl", testListing)
	coll := writeFixture(t, dir, "collection.yaml", testCollection)
	out := filepath.Join(dir, "letters.xml")
	jsonOut := filepath.Join(dir, "letters.json")
	reportOut := filepath.Join(dir, "letters.md")

	_, stderr, err := execute(t, "render",
		"--collection", coll,
		"--manifest", listing,
		"--prefix", "letters/",
		"--iiif", "https://iiif.example.org/iiif/2/",
		"--out", out,
		"--json", jsonOut,
		"--report", reportOut,
	)
	if err != nil {
		t.Fatalf("render failed: %v\n%s", err, stderr)
	}

	doc, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Expected XML output: %v", err)
	}
	for _, want := range []string{
		"<titleproper>Family Papers</titleproper>",
		"<unittitle>Second letter</unittitle>",
		`href="https://iiif.example.org/iiif/2/letters%2FDir1%2Fitem2.jpg/full/max/0/default.jpg"`,
		"<c2",
	} {
		if !strings.Contains(string(doc), want) {
			t.Errorf("Expected XML to contain %q", want)
		}
	}
	if strings.Contains(string(doc), ".thumb") {
		t.Error("Expected thumbnail keys to be skipped")
	}

	data, err := os.ReadFile(jsonOut)
	if err != nil {
		t.Fatalf("Expected JSON output: %v", err)
	}
	var projection map[string]any
	if err := json.Unmarshal(data, &projection); err != nil {
		t.Fatalf("Invalid JSON output: %v", err)
	}
	if items, ok := projection["items"].([]any); !ok || len(items) != 2 {
		t.Errorf("Expected 2 top-level components, got %v", projection["items"])
	}

	if _, err := os.Stat(reportOut); err != nil {
		t.Errorf("Expected report output: %v", err)
	}
}

func TestRenderCommandValidationErrors(t *testing.T) {
	dir := t.TempDir()
	listing := writeFixture(t, dir, "listing.jsonl", testListing)
	coll := writeFixture(t, dir, "collection.yaml", "extent: 1 box\n")
	out := filepath.Join(dir, "ead.xml")

	_, stderr, err := execute(t, "render", "--collection", coll, "--manifest", listing, "--prefix", "letters/", "--out", out)
	if err == nil {
		t.Fatal("Expected error for missing title and scope")
	}
	if !strings.Contains(stderr, "[field: title]") || !strings.Contains(stderr, "[field: scope]") {
		t.Errorf("Expected both validation errors to be printed, got %q", stderr)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("Expected no output file after validation failure")
	}
}

func TestRenderCommandDefaults(t *testing.T) {
	dir := t.TempDir()
	listing := writeFixture(t, dir, "listing.jsonl", testListing)

	stdout, stderr, err := execute(t, "render",
		"--collection", filepath.Join(dir, "missing.yaml"),
		"--manifest", listing,
		"--prefix", "letters/",
		"--defaults",
		"--out", "-",
	)
	if err != nil {
		t.Fatalf("render failed: %v\n%s", err, stderr)
	}
	if !strings.Contains(stdout, "<titleproper>Default Collection Name</titleproper>") {
		t.Errorf("Expected placeholder title in output")
	}
}

func TestRenderCommandPrefixFromEnv(t *testing.T) {
	dir := t.TempDir()
	listing := writeFixture(t, dir, "listing.jsonl", testListing)
	coll := writeFixture(t, dir, "collection.yaml", testCollection)
	t.Setenv(envPrefix, "letters/Dir2")

	stdout, stderr, err := execute(t, "render", "--collection", coll, "--manifest", listing, "--out", "-")
	if err != nil {
		t.Fatalf("render failed: %v\n%s", err, stderr)
	}
	if strings.Contains(stdout, "item1") || !strings.Contains(stdout, "item4") {
		t.Errorf("Expected only items under the environment prefix\n%s", stdout)
	}
}

func TestInspectCommand(t *testing.T) {
	dir := t.TempDir()
	listing := writeFixture(t, dir, "listing.jsonl", testListing)

	stdout, stderr, err := execute(t, "inspect", "--collection", filepath.Join(dir, "none.yaml"), "--manifest", listing, "--prefix", "letters/")
	if err != nil {
		t.Fatalf("inspect failed: %v\n%s", err, stderr)
	}
	if !strings.Contains(stdout, "Items: 4  Components: 4  Deepest level: c3") {
		t.Errorf("Unexpected summary\n%s", stdout)
	}
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()
	listing := writeFixture(t, dir, "listing.jsonl", testListing)
	coll := filepath.Join(dir, "collection.yaml")

	if _, stderr, err := execute(t, "init", "--collection", coll, "--manifest", listing, "--prefix", "letters/"); err != nil {
		t.Fatalf("init failed: %v\n%s", err, stderr)
	}

	data, err := os.ReadFile(coll)
	if err != nil {
		t.Fatalf("Expected collection file: %v", err)
	}
	if !strings.Contains(string(data), "identifier: Dir2/Dir2-1/item3") {
		t.Errorf("Expected item entries in template\n%s", data)
	}

	if _, _, err := execute(t, "init", "--collection", coll, "--manifest", listing); err == nil {
		t.Error("Expected error when collection file exists")
	}
}
