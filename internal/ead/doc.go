// Package ead builds and serializes Encoded Archival Description (EAD 2002)
// finding aids for a micro-archive publication.
//
// # Overview
//
// A publication is described by collection-level metadata (identity, contact,
// free-text description) and a flat, ordered list of items whose identifiers
// are "/"-delimited paths:
//
//	prefix/Dir1/Dir1-1/item1
//	prefix/Dir1/item2
//	prefix/Dir2/Dir2-1/item3
//
// Build groups the items into a tree: every shared path prefix becomes one
// Component and every item becomes a leaf under its deepest component.
// Components keep the position of their first appearance and items keep their
// input order, so nothing is sorted.
//
// # Usage
//
//	res, err := ead.Render(ead.Request{
//	    Identity:    ead.Identity{Title: "Letters"},
//	    Description: ead.Description{Scope: "Family correspondence"},
//	    Items:       items,
//	})
//	if errors.Is(err, ead.ErrValidation) {
//	    for _, verr := range ead.ValidationErrors(err) {
//	        fmt.Println(verr)
//	    }
//	}
//
// # Document Shape
//
// The serializer emits a single namespace declaration on the root <ead>
// element. Components and items are nested <c1>, <c2>, ... elements numbered
// by depth. When every item shares one leading segment, that segment names
// the collection itself: it becomes the archdesc <unitid> and its children
// become the depth-1 components.
//
// Nothing in this package performs I/O or logs. Callers own presentation of
// errors and warnings.
package ead
