package collection

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/lehigh-university-libraries/microarchive/internal/ead"
	"gopkg.in/yaml.v3"
)

// Placeholder values used when the collection form has not been filled in.
const (
	DefaultTitle = "Default Collection Name"
	DefaultScope = "[Default collection description.]"
)

// ErrNotFound is returned when the collection file does not exist.
var ErrNotFound = errors.New("collection file not found")

// File is the collection description as edited by the archivist.
// Its sections mirror the identifying, context and descriptive forms.
type File struct {
	// Identifying information
	Title           string `yaml:"title"`
	DateDescription string `yaml:"datedesc"`
	Extent          string `yaml:"extent"`

	// Context information
	Holder   string `yaml:"holder"`
	Street   string `yaml:"street"`
	Postcode string `yaml:"postcode"`

	// Descriptive information
	BiographicalHistory string   `yaml:"bioghist"`
	Scope               string   `yaml:"scope"`
	Languages           []string `yaml:"langs"`

	// Item information, keyed by identifier
	Items []ItemInfo `yaml:"items,omitempty"`
}

// ItemInfo holds the per-item title and scope entered for one identifier.
type ItemInfo struct {
	Identifier string `yaml:"identifier"`
	Title      string `yaml:"title"`
	Scope      string `yaml:"scope"`
}

// Load reads a collection file. If the file does not exist it returns
// ErrNotFound.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read collection file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse collection file %s: %w", path, err)
	}
	return &f, nil
}

// Save writes the collection file as YAML.
func (f *File) Save(path string) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write collection file: %w", err)
	}
	return nil
}

// ApplyDefaults fills an empty title or scope with the placeholder values.
func (f *File) ApplyDefaults() {
	if strings.TrimSpace(f.Title) == "" {
		f.Title = DefaultTitle
	}
	if strings.TrimSpace(f.Scope) == "" {
		f.Scope = DefaultScope
	}
}

// Template returns a collection file with placeholder values and one empty
// entry per discovered item, ready to be filled in.
func Template(items []ead.ItemInput) *File {
	f := &File{Languages: []string{}}
	f.ApplyDefaults()
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if seen[item.Identifier] {
			continue
		}
		seen[item.Identifier] = true
		f.Items = append(f.Items, ItemInfo{Identifier: item.Identifier, Title: item.Title, Scope: item.Scope})
	}
	return f
}

// Request combines the collection description with the discovered items.
// Titles and scopes entered for an identifier override those from the
// listing; the first entry for an identifier wins.
func (f *File) Request(items []ead.ItemInput) ead.Request {
	info := make(map[string]ItemInfo, len(f.Items))
	for _, it := range f.Items {
		if _, ok := info[it.Identifier]; !ok {
			info[it.Identifier] = it
		}
	}

	merged := make([]ead.ItemInput, len(items))
	for i, item := range items {
		if it, ok := info[item.Identifier]; ok {
			if it.Title != "" {
				item.Title = it.Title
			}
			if it.Scope != "" {
				item.Scope = it.Scope
			}
		}
		merged[i] = item
	}

	langs := f.Languages
	if langs == nil {
		langs = []string{}
	}

	return ead.Request{
		Identity: ead.Identity{
			Title:           f.Title,
			DateDescription: f.DateDescription,
			Extent:          f.Extent,
		},
		Contact: ead.Contact{
			Holder:   f.Holder,
			Street:   f.Street,
			Postcode: f.Postcode,
		},
		Description: ead.Description{
			BiographicalHistory: f.BiographicalHistory,
			Scope:               f.Scope,
			Languages:           langs,
		},
		Items: merged,
	}
}
