// Package schema defines the sections of the letter-of-instruction interview.
//
// Section definitions live in an embedded YAML file rather than in code so
// that both compilers, the inclusion predicate, and the progress endpoint all
// dispatch off the same table. Definitions are loaded once at init and never
// mutated afterwards.
package schema

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed sections.yaml
var sectionsYAML []byte

// Shape describes how a section holds its data.
type Shape string

const (
	// ShapeGroup is a single fixed set of named fields.
	ShapeGroup Shape = "group"
	// ShapeList is an ordered list of repeatable items.
	ShapeList Shape = "list"
)

// Strategy selects how the layout compiler renders a section.
type Strategy string

const (
	// StrategyCard renders the whole section as one full-width card.
	StrategyCard Strategy = "card"
	// StrategyCards renders one full-width card per item.
	StrategyCards Strategy = "cards"
	// StrategyTwoColumnCards packs item cards two per row, falling back to
	// full-width cards when the item count exceeds the section's threshold.
	StrategyTwoColumnCards Strategy = "two-column-cards"
	// StrategyTable renders a summary table plus detail cards for items
	// that carry long-form notes.
	StrategyTable Strategy = "table"
	// StrategyFreeText renders label + wrapped body per field, no card.
	StrategyFreeText Strategy = "free-text"
)

// FieldKind distinguishes short values from long-form text and signatures.
type FieldKind string

const (
	KindShort     FieldKind = "short"
	KindLong      FieldKind = "long"
	KindSignature FieldKind = "signature"
)

// Field describes one named value within a section.
type Field struct {
	Name    string    `yaml:"name"`
	Label   string    `yaml:"label"`
	Kind    FieldKind `yaml:"kind"`
	Default string    `yaml:"default"`
}

// ItemTitle describes how a repeatable item derives its display title.
type ItemTitle struct {
	Field    string `yaml:"field"`
	Fallback string `yaml:"fallback"`
	Suffix   string `yaml:"suffix"`
}

// Table describes the summary-table layout for tabular sections.
type Table struct {
	Columns    []string `yaml:"columns"`
	NotesField string   `yaml:"notesField"`
}

// Section is one immutable section definition.
type Section struct {
	ID              string    `yaml:"id"`
	Letter          string    `yaml:"letter"`
	Title           string    `yaml:"title"`
	StateKey        string    `yaml:"stateKey"`
	Shape           Shape     `yaml:"shape"`
	Strategy        Strategy  `yaml:"strategy"`
	ColumnThreshold int       `yaml:"columnThreshold"`
	SignatureField  string    `yaml:"signatureField"`
	Intro           string    `yaml:"intro"`
	ItemTitle       ItemTitle `yaml:"itemTitle"`
	Table           Table     `yaml:"table"`
	Fields          []Field   `yaml:"fields"`
}

// Heading returns the section heading as it appears in generated documents.
func (s *Section) Heading() string {
	return s.Letter + ". " + s.Title
}

// Key returns the key the section uses in serialized interview state.
// Most sections use their ID; a few carry a distinct legacy key so that
// snapshots exported by earlier releases still import cleanly.
func (s *Section) Key() string {
	if s.StateKey != "" {
		return s.StateKey
	}
	return s.ID
}

// Field returns the definition of the named field, or nil if unknown.
func (s *Section) Field(name string) *Field {
	for i := range s.Fields {
		if s.Fields[i].Name == name {
			return &s.Fields[i]
		}
	}
	return nil
}

// TitleFields reports the fields consumed by the item title, so renderers
// can skip repeating them in the item body.
func (s *Section) TitleFields(itemValues map[string]string) map[string]bool {
	used := map[string]bool{}
	if s.ItemTitle.Field == "" {
		return used
	}
	if itemValues[s.ItemTitle.Field] != "" {
		used[s.ItemTitle.Field] = true
	} else if s.ItemTitle.Fallback != "" && itemValues[s.ItemTitle.Fallback] != "" {
		used[s.ItemTitle.Fallback] = true
	}
	if s.ItemTitle.Suffix != "" {
		used[s.ItemTitle.Suffix] = true
	}
	return used
}

type document struct {
	Sections []Section `yaml:"sections"`
}

var (
	sections []Section
	byID     map[string]*Section
)

func init() {
	var err error
	sections, byID, err = parse(sectionsYAML)
	if err != nil {
		panic(fmt.Sprintf("schema: embedded sections.yaml is invalid: %v", err))
	}
}

func parse(raw []byte) ([]Section, map[string]*Section, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, nil, fmt.Errorf("unmarshal sections: %w", err)
	}
	if len(doc.Sections) == 0 {
		return nil, nil, fmt.Errorf("no sections defined")
	}

	index := make(map[string]*Section, len(doc.Sections))
	for i := range doc.Sections {
		s := &doc.Sections[i]
		if s.ID == "" || s.Letter == "" || s.Title == "" {
			return nil, nil, fmt.Errorf("section %d: id, letter, and title are required", i)
		}
		if _, dup := index[s.ID]; dup {
			return nil, nil, fmt.Errorf("duplicate section id %q", s.ID)
		}
		if s.Shape != ShapeGroup && s.Shape != ShapeList {
			return nil, nil, fmt.Errorf("section %q: unknown shape %q", s.ID, s.Shape)
		}
		if len(s.Fields) == 0 {
			return nil, nil, fmt.Errorf("section %q: no fields defined", s.ID)
		}
		for j := range s.Fields {
			if s.Fields[j].Kind == "" {
				s.Fields[j].Kind = KindShort
			}
		}
		index[s.ID] = s
	}
	return doc.Sections, index, nil
}

// Sections returns all section definitions in document order.
func Sections() []Section {
	return sections
}

// Get returns the section with the given id, or nil if unknown.
func Get(id string) *Section {
	return byID[id]
}
