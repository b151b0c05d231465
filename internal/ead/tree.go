package ead

import (
	"errors"
	"fmt"
	"strings"
)

// Separator delimits path segments in item identifiers.
const Separator = "/"

// Tree is the result of grouping items by their identifier paths.
type Tree struct {
	Roots    []Node
	Warnings []Warning
}

// Build groups items into a tree in a single pass.
//
// Algorithm:
//  1. Split each identifier on "/"; the last segment names the item, the
//     preceding ones name its chain of ancestor components.
//  2. Look up each ancestor prefix in an index; create the component on
//     first sight and append it to its parent, reuse it afterwards.
//  3. Append the item as the last child of its deepest component.
//
// Sibling order is the order of first appearance. Items with identical
// identifiers are all kept and reported as a DuplicateIdentifierWarning.
// Empty identifiers, empty path segments and text that XML cannot carry are
// rejected; every offending item is reported in the joined error.
func Build(items []ItemInput) (*Tree, error) {
	var errs []error
	for i, in := range items {
		errs = append(errs, checkItem(i+1, in)...)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	tree := &Tree{}
	index := make(map[string]*Component)
	positions := make(map[string][]int)
	var order []string

	for i, in := range items {
		siblings := &tree.Roots
		start := 0
		for {
			j := strings.Index(in.Identifier[start:], Separator)
			if j < 0 {
				break
			}
			end := start + j
			prefix := in.Identifier[:end]
			c, ok := index[prefix]
			if !ok {
				c = &Component{
					Label: in.Identifier[start:end],
					Path:  prefix,
					ID:    nodeID(kindComponent, prefix, 0),
				}
				index[prefix] = c
				*siblings = append(*siblings, c)
			}
			siblings = &c.Children
			start = end + len(Separator)
		}

		seen := positions[in.Identifier]
		if seen == nil {
			order = append(order, in.Identifier)
		}
		positions[in.Identifier] = append(seen, i+1)

		*siblings = append(*siblings, newItem(in, len(seen)+1))
	}

	for _, id := range order {
		if p := positions[id]; len(p) > 1 {
			tree.Warnings = append(tree.Warnings, DuplicateIdentifierWarning{Identifier: id, Positions: p})
		}
	}

	return tree, nil
}

func newItem(in ItemInput, ordinal int) *Item {
	title := in.Title
	if strings.TrimSpace(title) == "" {
		title = in.Identifier
	}
	return &Item{
		Identifier:   in.Identifier,
		ID:           nodeID(kindItem, in.Identifier, ordinal),
		Identity:     Identity{Title: title},
		Description:  Description{Scope: in.Scope, Languages: []string{}},
		ResourceURL:  in.ResourceURL,
		ThumbnailURL: in.ThumbnailURL,
	}
}

func checkItem(pos int, in ItemInput) []error {
	var errs []error
	if err := checkIdentifier(pos, in.Identifier); err != nil {
		errs = append(errs, err)
	}
	fields := []struct{ name, value string }{
		{"title", in.Title},
		{"scope", in.Scope},
		{"url", in.ResourceURL},
		{"thumbnail_url", in.ThumbnailURL},
	}
	for _, f := range fields {
		if err := checkText(f.name, pos, in.Identifier, f.value); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func checkIdentifier(pos int, identifier string) error {
	if identifier == "" {
		return &ValidationError{
			Field:   "identifier",
			Item:    pos,
			Message: "identifier is required",
		}
	}
	if err := checkText("identifier", pos, identifier, identifier); err != nil {
		return err
	}
	for _, seg := range strings.Split(identifier, Separator) {
		if strings.TrimSpace(seg) == "" {
			return &ValidationError{
				Field:      "identifier",
				Item:       pos,
				Identifier: identifier,
				Message:    fmt.Sprintf("identifier %q contains an empty path segment", identifier),
				Err:        ErrMalformedPath,
			}
		}
	}
	return nil
}
