package report

import (
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/lehigh-university-libraries/microarchive/internal/ead"
)

// Table renders the hierarchy as a terminal table, one row per node in
// document order.
func Table(a *ead.Archive) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Level", "Kind", "Label", "Identifier", "ID"})

	_, nodes := a.Contents()
	_ = ead.Walk(nodes, func(n ead.Node, depth int) error {
		indent := strings.Repeat("  ", depth-1)
		switch n := n.(type) {
		case *ead.Component:
			tw.AppendRow(table.Row{"c" + strconv.Itoa(depth), "component", indent + n.Label, n.Path, n.ID})
		case *ead.Item:
			tw.AppendRow(table.Row{"c" + strconv.Itoa(depth), "item", indent + n.Label(), n.Identifier, n.ID})
		}
		return nil
	})

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 5, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}
