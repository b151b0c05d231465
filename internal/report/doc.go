// Package report renders human-facing views of an archive: a Markdown
// summary for publication next to the finding aid and a terminal table
// for inspecting the hierarchy.
package report
