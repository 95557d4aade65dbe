// Package interview holds the interview state model: an immutable document
// of per-section records mutated only through the reducer in reducer.go.
package interview

import (
	"strings"

	"github.com/google/uuid"
	"github.com/relay-letters/relay/internal/schema"
)

// Item is one entry in a repeatable-list section. The ID is an opaque
// identity token assigned at creation and never reused; it exists for list
// reconciliation and snapshot round-trips, nothing more.
type Item struct {
	ID     string
	Values map[string]string
}

// Record is the payload of one section: Values for group sections,
// Items for list sections. Exactly one of the two is populated.
type Record struct {
	Values map[string]string
	Items  []Item
}

// State is the root aggregate: one Record per schema section plus the
// resume cursor and the last persistence timestamp (RFC 3339, empty when
// never persisted). Treat values as immutable; Apply returns fresh copies.
type State struct {
	Records        map[string]Record
	LastSaved      string
	CurrentSection string
}

// NewItem returns an empty item with a fresh identity token and all schema
// defaults applied.
func NewItem(sec *schema.Section) Item {
	values := make(map[string]string, len(sec.Fields))
	for _, f := range sec.Fields {
		values[f.Name] = f.Default
	}
	return Item{ID: uuid.NewString(), Values: values}
}

func newRecord(sec *schema.Section) Record {
	if sec.Shape == schema.ShapeList {
		return Record{Items: []Item{NewItem(sec)}}
	}
	values := make(map[string]string, len(sec.Fields))
	for _, f := range sec.Fields {
		values[f.Name] = f.Default
	}
	return Record{Values: values}
}

// Initial returns the canonical all-empty state: every section present,
// every list holding one placeholder item.
func Initial() State {
	records := make(map[string]Record, len(schema.Sections()))
	for _, sec := range schema.Sections() {
		records[sec.ID] = newRecord(schema.Get(sec.ID))
	}
	return State{
		Records:        records,
		CurrentSection: schema.Sections()[0].ID,
	}
}

// Value returns the trimmed value of a group field, or "" if absent.
func (r Record) Value(field string) string {
	return strings.TrimSpace(r.Values[field])
}

// Value returns the trimmed value of an item field, or "" if absent.
func (it Item) Value(field string) string {
	return strings.TrimSpace(it.Values[field])
}

// Title derives the item's display title from the section's title rule:
// the identifying field if set, otherwise the fallback, with the suffix
// field appended after an em dash when present.
func (it Item) Title(sec *schema.Section) string {
	title := it.Value(sec.ItemTitle.Field)
	if title == "" && sec.ItemTitle.Fallback != "" {
		title = it.Value(sec.ItemTitle.Fallback)
	}
	if sec.ItemTitle.Suffix != "" {
		if suffix := it.Value(sec.ItemTitle.Suffix); suffix != "" && title != "" {
			title += " — " + suffix
		} else if title == "" {
			title = suffix
		}
	}
	return title
}

func copyValues(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func copyItems(src []Item) []Item {
	dst := make([]Item, len(src))
	for i, it := range src {
		dst[i] = Item{ID: it.ID, Values: copyValues(it.Values)}
	}
	return dst
}

// clone produces a deep copy of a single record. The reducer copies only the
// record it touches; untouched records are shared between state versions.
func (r Record) clone() Record {
	out := Record{}
	if r.Values != nil {
		out.Values = copyValues(r.Values)
	}
	if r.Items != nil {
		out.Items = copyItems(r.Items)
	}
	return out
}

func (s State) withRecord(sectionID string, rec Record) State {
	records := make(map[string]Record, len(s.Records))
	for k, v := range s.Records {
		records[k] = v
	}
	records[sectionID] = rec
	s.Records = records
	return s
}
