package report

import (
	"github.com/lehigh-university-libraries/microarchive/internal/ead"
)

// Stats summarizes the shape of an archive's hierarchy.
type Stats struct {
	Items      int
	Components int
	MaxDepth   int
}

// Summarize counts the nodes under the archive's description of subordinate
// components. Depths match the c-element numbering of the rendered document.
func Summarize(a *ead.Archive) Stats {
	var s Stats
	_, nodes := a.Contents()
	_ = ead.Walk(nodes, func(n ead.Node, depth int) error {
		switch n.(type) {
		case *ead.Item:
			s.Items++
		case *ead.Component:
			s.Components++
		}
		s.MaxDepth = max(s.MaxDepth, depth)
		return nil
	})
	return s
}
