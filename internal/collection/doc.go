// Package collection reads and writes the collection description file: the
// identifying, context and descriptive information about a collection plus
// per-item titles and scopes, and turns it into an ead.Request.
package collection
