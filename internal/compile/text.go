// Package compile turns an interview state snapshot into the two export
// formats: a Markdown letter and a paginated PDF. Both walk the schema in
// section order and share the inclusion predicate in internal/interview, so
// a section appears in one output iff it appears in the other.
package compile

import (
	"strings"
	"time"

	"github.com/relay-letters/relay/internal/interview"
	"github.com/relay-letters/relay/internal/schema"
)

const (
	docTitle   = "Letter of Instruction"
	disclaimer = "This is not a legal document. It is a personal letter of instruction " +
		"intended to help your family locate important information and understand " +
		"your wishes. Consult an attorney for legal estate planning documents."
	productFooter = "Generated with Relay — free, private, yours to keep."
)

// Text compiles the state into a Markdown document. It is pure string
// concatenation and cannot fail; it also serves as the semantic ground truth
// for which sections and fields the PDF must include.
func Text(state interview.State, now time.Time) string {
	var b strings.Builder
	line := func(s string) {
		b.WriteString(s)
		b.WriteString("\n")
	}

	line("# " + docTitle)
	line("")
	line("**Generated:** " + now.Format("January 2, 2006"))
	line("")
	line("> **Important:** " + disclaimer)
	line("")
	line("---")
	line("")

	for _, def := range schema.Sections() {
		sec := schema.Get(def.ID)
		rec := state.Records[sec.ID]
		if !interview.HasData(rec, sec) {
			continue
		}
		line("## " + sec.Heading())
		line("")
		if sec.Shape == schema.ShapeList {
			textListSection(line, rec, sec)
		} else {
			textGroupSection(line, rec, sec)
		}
		line("---")
		line("")
	}

	line("*" + productFooter + "*")
	return b.String()
}

func textListSection(line func(string), rec interview.Record, sec *schema.Section) {
	for _, item := range rec.Items {
		if !interview.ItemHasData(item, sec) {
			continue
		}
		line("### " + item.Title(sec))
		used := sec.TitleFields(item.Values)
		for i := range sec.Fields {
			f := &sec.Fields[i]
			if used[f.Name] || f.Kind == schema.KindSignature {
				continue
			}
			v := item.Value(f.Name)
			if v == "" || v == f.Default {
				continue
			}
			line("- **" + f.Label + ":** " + v)
		}
		line("")
	}
}

func textGroupSection(line func(string), rec interview.Record, sec *schema.Section) {
	for i := range sec.Fields {
		f := &sec.Fields[i]
		v := rec.Value(f.Name)
		if v == "" || v == f.Default {
			continue
		}
		switch f.Kind {
		case schema.KindSignature:
			// A raster signature has no text rendering; note its presence.
			line("- **" + f.Label + ":** on file")
		case schema.KindLong:
			line("### " + f.Label)
			line("")
			line(v)
			line("")
		default:
			line("- **" + f.Label + ":** " + v)
		}
	}
	line("")
}
