package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/lehigh-university-libraries/microarchive/internal/ead"
	"github.com/nao1215/markdown"
)

// WriteMarkdown writes a human-readable summary of the archive: the
// collection description, hierarchy statistics, build warnings and an
// outline of the components and items.
func WriteMarkdown(w io.Writer, a *ead.Archive) error {
	md := markdown.NewMarkdown(w)

	writeHeader(md, a)
	writeSummary(md, a)
	writeWarnings(md, a)
	writeOutline(md, a)

	md.HorizontalRule()
	md.PlainTextf("Archive `%s`, EAD namespace `%s`.", a.ID(), ead.Namespace)

	return md.Build()
}

func writeHeader(md *markdown.Markdown, a *ead.Archive) {
	identity := a.Identity()
	contact := a.Contact()
	desc := a.Description()
	unitID, _ := a.Contents()

	md.H1(escapeMarkdown(identity.Title))
	md.PlainText("")

	langs := make([]string, 0, len(desc.Languages))
	for _, code := range desc.Languages {
		langs = append(langs, ead.LanguageName(code))
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Unit ID", cell(unitID)},
			{"Dates", cell(identity.DateDescription)},
			{"Extent", cell(identity.Extent)},
			{"Repository", cell(contact.Holder)},
			{"Address", cell(strings.TrimSpace(contact.Street + " " + contact.Postcode))},
			{"Languages", cell(strings.Join(langs, ", "))},
		},
	})
	md.PlainText("")

	if desc.Scope != "" {
		md.H2("Scope and Content")
		md.PlainText("")
		md.PlainText(desc.Scope)
		md.PlainText("")
	}
	if desc.BiographicalHistory != "" {
		md.H2("Biographical History")
		md.PlainText("")
		md.PlainText(desc.BiographicalHistory)
		md.PlainText("")
	}
}

func writeSummary(md *markdown.Markdown, a *ead.Archive) {
	s := Summarize(a)

	md.H2("Summary")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Measure", "Count"},
		Rows: [][]string{
			{"Items", strconv.Itoa(s.Items)},
			{"Components", strconv.Itoa(s.Components)},
			{"Deepest level", strconv.Itoa(s.MaxDepth)},
		},
	})
	md.PlainText("")
}

func writeWarnings(md *markdown.Markdown, a *ead.Archive) {
	warnings := a.Warnings()
	if len(warnings) == 0 {
		md.Tip("No warnings were raised while building the hierarchy.")
		md.PlainText("")
		return
	}

	md.Warningf("%d warning(s) were raised while building the hierarchy.", len(warnings))
	md.PlainText("")

	lines := make([]string, 0, len(warnings))
	for _, warn := range warnings {
		lines = append(lines, escapeMarkdown(warn.Warning()))
	}
	md.BulletList(lines...)
	md.PlainText("")
}

func writeOutline(md *markdown.Markdown, a *ead.Archive) {
	md.H2("Hierarchy")
	md.PlainText("")

	_, nodes := a.Contents()
	if len(nodes) == 0 {
		md.PlainText("The collection has no items.")
		md.PlainText("")
		return
	}

	_ = ead.Walk(nodes, func(n ead.Node, depth int) error {
		indent := strings.Repeat("  ", depth-1)
		switch n := n.(type) {
		case *ead.Component:
			md.PlainText(indent + "- **" + escapeMarkdown(n.Label) + "/**")
		case *ead.Item:
			md.PlainText(indent + "- " + escapeMarkdown(n.Identity.Title) + " (" + codeSpan(n.Identifier) + ")")
		}
		return nil
	})
	md.PlainText("")
}

// cell formats a table value, "-" when empty.
func cell(s string) string {
	if s == "" {
		return "-"
	}
	return escapeMarkdown(s)
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"#", `\#`,
	"|", `\|`,
	"\n", " ",
	"\r", " ",
)

// escapeMarkdown makes free text render literally inside a line.
func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// codeSpan wraps s in a backtick fence longer than any backtick run in s.
func codeSpan(s string) string {
	s = strings.NewReplacer("\n", " ", "\r", " ").Replace(s)
	longest, run := 0, 0
	for _, r := range s {
		if r == '`' {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	if longest == 0 {
		return "`" + s + "`"
	}
	fence := strings.Repeat("`", longest+1)
	return fence + " " + s + " " + fence
}
