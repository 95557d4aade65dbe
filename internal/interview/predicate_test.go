package interview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relay-letters/relay/internal/schema"
)

func TestHasDataEmptyState(t *testing.T) {
	s := Initial()
	for _, def := range schema.Sections() {
		sec := schema.Get(def.ID)
		assert.False(t, HasData(s.Records[sec.ID], sec), sec.ID)
	}
}

func TestHasDataGroupSection(t *testing.T) {
	sec := schema.Get("aboutMe")

	s := Apply(Initial(), SetField{Section: "aboutMe", Field: "fullName", Value: "Jane"})
	assert.True(t, HasData(s.Records["aboutMe"], sec))

	// Whitespace-only values do not count.
	s = Apply(Initial(), SetField{Section: "aboutMe", Field: "fullName", Value: "   "})
	assert.False(t, HasData(s.Records["aboutMe"], sec))
}

func TestHasDataListSection(t *testing.T) {
	sec := schema.Get("contacts")

	s := Apply(Initial(), SetItemField{Section: "contacts", Index: 0, Field: "phone", Value: "555-0100"})
	assert.True(t, HasData(s.Records["contacts"], sec))
}

func TestDefaultedFieldDoesNotCount(t *testing.T) {
	// A fresh debts item is non-empty only in its defaulted direction
	// field, which must not make the section count as filled.
	sec := schema.Get("debts")
	s := Initial()

	require.Equal(t, "I owe", s.Records["debts"].Items[0].Value("direction"))
	assert.False(t, HasData(s.Records["debts"], sec))

	s = Apply(s, SetItemField{Section: "debts", Index: 0, Field: "lender", Value: "First Cascade Bank"})
	assert.True(t, HasData(s.Records["debts"], sec))
}

func TestProgressCounts(t *testing.T) {
	s := Initial()
	s = Apply(s, SetField{Section: "aboutMe", Field: "fullName", Value: "Jane"})
	s = Apply(s, SetItemField{Section: "contacts", Index: 0, Field: "name", Value: "Jordan"})
	s = Apply(s, AppendItem{Section: "contacts"})

	progress := Progress(s)
	require.Len(t, progress, 12)

	byID := map[string]SectionProgress{}
	for _, p := range progress {
		byID[p.ID] = p
	}

	about := byID["aboutMe"]
	assert.True(t, about.Filled)
	assert.Equal(t, 1, about.FilledCount)
	assert.Equal(t, 6, about.TotalCount)

	contacts := byID["contacts"]
	assert.True(t, contacts.Filled)
	assert.Equal(t, 1, contacts.FilledCount)
	assert.Equal(t, 2, contacts.TotalCount)

	wishes := byID["wishes"]
	assert.False(t, wishes.Filled)
	assert.Equal(t, 0, wishes.FilledCount)
}

func TestDemoFillsEverySection(t *testing.T) {
	s := Demo()
	for _, p := range Progress(s) {
		if p.ID == "business" {
			// The demo persona has no business interests.
			continue
		}
		assert.True(t, p.Filled, p.ID)
	}
	assert.Equal(t, "verification", s.CurrentSection)
}

func TestItemTitle(t *testing.T) {
	fin := schema.Get("financial")
	it := NewItem(fin)
	it.Values["institution"] = "Vanguard"
	it.Values["accountType"] = "401(k)"
	assert.Equal(t, "Vanguard — 401(k)", it.Title(fin))

	it.Values["accountType"] = ""
	assert.Equal(t, "Vanguard", it.Title(fin))

	prop := schema.Get("property")
	pi := NewItem(prop)
	pi.Values["propertyType"] = "Vehicle"
	assert.Equal(t, "Vehicle", pi.Title(prop), "fallback used when description empty")

	pi.Values["description"] = "2019 Subaru Outback"
	assert.Equal(t, "2019 Subaru Outback", pi.Title(prop))
}
