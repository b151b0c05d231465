package ead

import (
	"errors"
	"slices"
	"strings"
)

// Identity is what a unit is called and how big it is.
type Identity struct {
	Title           string `json:"title" yaml:"title"`
	DateDescription string `json:"datedesc" yaml:"datedesc"`
	Extent          string `json:"extent" yaml:"extent"`
}

// Contact describes custodianship of the collection.
type Contact struct {
	Holder   string `json:"holder" yaml:"holder"`
	Street   string `json:"street" yaml:"street"`
	Postcode string `json:"postcode" yaml:"postcode"`
}

// Description holds free-text and enumerated descriptive fields.
// Items only carry Scope.
type Description struct {
	BiographicalHistory string   `json:"bioghist" yaml:"bioghist"`
	Scope               string   `json:"scope" yaml:"scope"`
	Languages           []string `json:"langs" yaml:"langs"`
}

// ItemInput is one discovered item as supplied by the file listing.
// Title and Scope are optional.
type ItemInput struct {
	Identifier   string `json:"identifier" yaml:"identifier"`
	Title        string `json:"title,omitempty" yaml:"title,omitempty"`
	Scope        string `json:"scope,omitempty" yaml:"scope,omitempty"`
	ResourceURL  string `json:"url" yaml:"url"`
	ThumbnailURL string `json:"thumbnail_url" yaml:"thumbnail_url"`
}

// Request carries everything needed for one publication.
type Request struct {
	Identity    Identity    `json:"identity" yaml:"identity"`
	Contact     Contact     `json:"contact" yaml:"contact"`
	Description Description `json:"description" yaml:"description"`
	Items       []ItemInput `json:"items" yaml:"items"`
}

// Node is a *Component or an *Item.
type Node interface {
	// Key is the node's full "/"-joined path.
	Key() string
	isNode()
}

// Component is a synthetic node for one path segment shared by its
// descendants. It owns its children exclusively.
type Component struct {
	Label    string
	Path     string
	ID       string
	Children []Node
}

func (c *Component) Key() string { return c.Path }
func (*Component) isNode()       {}

// Item is a leaf of the hierarchy.
type Item struct {
	Identifier   string
	ID           string
	Identity     Identity
	Description  Description
	ResourceURL  string
	ThumbnailURL string
}

func (i *Item) Key() string { return i.Identifier }
func (*Item) isNode()       {}

// Label is the final path segment of the identifier.
func (i *Item) Label() string {
	if idx := strings.LastIndexByte(i.Identifier, '/'); idx >= 0 {
		return i.Identifier[idx+1:]
	}
	return i.Identifier
}

// Archive is the validated, default-filled description of one publication.
// It is built once by New and not modified afterwards.
type Archive struct {
	id          string
	identity    Identity
	contact     Contact
	description Description
	roots       []Node
	warnings    []Warning
}

// New validates req and composes the archive. All validation errors are
// reported together, joined; errors.Is(err, ErrValidation) holds for each.
func New(req Request) (*Archive, error) {
	errs := validateCollection(req.Identity, req.Contact, req.Description)

	tree, err := Build(req.Items)
	if err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	desc := req.Description
	desc.Languages = slices.Clone(desc.Languages)
	if desc.Languages == nil {
		desc.Languages = []string{}
	}

	return &Archive{
		id:          nodeID(kindArchive, req.Identity.Title, 0),
		identity:    req.Identity,
		contact:     req.Contact,
		description: desc,
		roots:       tree.Roots,
		warnings:    tree.Warnings,
	}, nil
}

func validateCollection(identity Identity, contact Contact, desc Description) []error {
	var errs []error
	if strings.TrimSpace(identity.Title) == "" {
		errs = append(errs, &ValidationError{Field: "title", Message: "collection title is required"})
	}
	if strings.TrimSpace(desc.Scope) == "" {
		errs = append(errs, &ValidationError{Field: "scope", Message: "collection scope and content is required"})
	}

	fields := []struct{ name, value string }{
		{"title", identity.Title},
		{"datedesc", identity.DateDescription},
		{"extent", identity.Extent},
		{"holder", contact.Holder},
		{"street", contact.Street},
		{"postcode", contact.Postcode},
		{"bioghist", desc.BiographicalHistory},
		{"scope", desc.Scope},
	}
	for _, f := range fields {
		if err := checkText(f.name, 0, "", f.value); err != nil {
			errs = append(errs, err)
		}
	}
	for _, code := range desc.Languages {
		if err := checkText("langs", 0, "", code); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// ID is the stable identifier of the archive, derived from its title.
func (a *Archive) ID() string { return a.id }

func (a *Archive) Identity() Identity { return a.identity }

func (a *Archive) Contact() Contact { return a.contact }

func (a *Archive) Description() Description {
	d := a.description
	d.Languages = slices.Clone(d.Languages)
	return d
}

// Roots returns a copy of the tree as built. Changes to the returned nodes do
// not affect the archive.
func (a *Archive) Roots() []Node { return cloneNodes(a.roots) }

// Warnings returns the non-fatal conditions found while building.
func (a *Archive) Warnings() []Warning { return slices.Clone(a.warnings) }

// Contents returns the nodes rendered inside <dsc> and the collection unit
// identifier. When the whole tree hangs off a single component, that
// component stands for the collection itself: its label is returned as the
// unit identifier and its children become the top level. The nodes are a copy.
func (a *Archive) Contents() (unitID string, nodes []Node) {
	unitID, nodes = a.contents()
	return unitID, cloneNodes(nodes)
}

func (a *Archive) contents() (string, []Node) {
	if len(a.roots) == 1 {
		if c, ok := a.roots[0].(*Component); ok {
			return c.Label, c.Children
		}
	}
	return "", a.roots
}

// cloneNodes deep-copies a subtree.
func cloneNodes(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		switch n := n.(type) {
		case *Component:
			c := *n
			c.Children = cloneNodes(n.Children)
			out[i] = &c
		case *Item:
			item := *n
			item.Description.Languages = slices.Clone(n.Description.Languages)
			out[i] = &item
		}
	}
	return out
}

// Walk visits nodes in pre-order, passing each node's depth (top level is 1).
// A non-nil error from fn stops the walk and is returned.
func Walk(nodes []Node, fn func(n Node, depth int) error) error {
	return walk(nodes, 1, fn)
}

func walk(nodes []Node, depth int, fn func(Node, int) error) error {
	for _, n := range nodes {
		if err := fn(n, depth); err != nil {
			return err
		}
		if c, ok := n.(*Component); ok {
			if err := walk(c.Children, depth+1, fn); err != nil {
				return err
			}
		}
	}
	return nil
}
