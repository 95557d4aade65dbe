package interview

import (
	"github.com/relay-letters/relay/internal/schema"
)

// countsTowardData reports whether a field participates in the emptiness
// test. Identity tokens never do; neither do fields with a schema default,
// since those are non-empty in a record nobody has touched.
func countsTowardData(f *schema.Field) bool {
	return f.Default == ""
}

// ItemHasData reports whether an item carries any user-entered value.
func ItemHasData(item Item, sec *schema.Section) bool {
	for i := range sec.Fields {
		f := &sec.Fields[i]
		if !countsTowardData(f) {
			continue
		}
		if item.Value(f.Name) != "" {
			return true
		}
	}
	return false
}

// HasData is the single inclusion predicate shared by both compilers and the
// progress endpoint. It is a pure function of the record's values: a group
// section counts when any field is non-empty after trimming; a list section
// counts when any item has any non-identity, non-default field filled in.
func HasData(rec Record, sec *schema.Section) bool {
	if sec.Shape == schema.ShapeList {
		for _, item := range rec.Items {
			if ItemHasData(item, sec) {
				return true
			}
		}
		return false
	}
	for i := range sec.Fields {
		f := &sec.Fields[i]
		if !countsTowardData(f) {
			continue
		}
		if rec.Value(f.Name) != "" {
			return true
		}
	}
	return false
}

// SectionProgress summarizes one section for the navigation sidebar.
type SectionProgress struct {
	ID          string `json:"id"`
	Letter      string `json:"letter"`
	Title       string `json:"title"`
	Filled      bool   `json:"filled"`
	FilledCount int    `json:"filledCount"`
	TotalCount  int    `json:"totalCount"`
}

// Progress evaluates every section with the shared predicate. For group
// sections the counts are filled fields out of total fields; for list
// sections they are filled items out of total items.
func Progress(state State) []SectionProgress {
	out := make([]SectionProgress, 0, len(schema.Sections()))
	for _, def := range schema.Sections() {
		sec := schema.Get(def.ID)
		rec := state.Records[sec.ID]
		p := SectionProgress{
			ID:     sec.ID,
			Letter: sec.Letter,
			Title:  sec.Title,
			Filled: HasData(rec, sec),
		}
		if sec.Shape == schema.ShapeList {
			p.TotalCount = len(rec.Items)
			for _, item := range rec.Items {
				if ItemHasData(item, sec) {
					p.FilledCount++
				}
			}
		} else {
			for i := range sec.Fields {
				f := &sec.Fields[i]
				if !countsTowardData(f) {
					continue
				}
				p.TotalCount++
				if rec.Value(f.Name) != "" {
					p.FilledCount++
				}
			}
		}
		out = append(out, p)
	}
	return out
}
