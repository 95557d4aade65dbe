package interview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialState(t *testing.T) {
	s := Initial()

	assert.Len(t, s.Records, 12)
	assert.Equal(t, "aboutMe", s.CurrentSection)
	assert.Empty(t, s.LastSaved)

	// Every list section starts with exactly one placeholder item.
	for _, id := range []string{"contacts", "financial", "insurance", "property", "legal", "debts"} {
		require.Len(t, s.Records[id].Items, 1, id)
		assert.NotEmpty(t, s.Records[id].Items[0].ID, id)
	}

	// Debts carry their direction default.
	assert.Equal(t, "I owe", s.Records["debts"].Items[0].Value("direction"))
}

func TestSetField(t *testing.T) {
	s := Initial()
	next := Apply(s, SetField{Section: "aboutMe", Field: "fullName", Value: "Jane Doe"})

	assert.Equal(t, "Jane Doe", next.Records["aboutMe"].Value("fullName"))
	assert.Empty(t, s.Records["aboutMe"].Value("fullName"), "input state must not change")
}

func TestSetFieldOnListSectionIsNoOp(t *testing.T) {
	s := Initial()
	next := Apply(s, SetField{Section: "contacts", Field: "name", Value: "nope"})
	assert.Equal(t, s, next)
}

func TestSetItemField(t *testing.T) {
	s := Initial()
	next := Apply(s, SetItemField{Section: "contacts", Index: 0, Field: "name", Value: "Jane"})

	assert.Equal(t, "Jane", next.Records["contacts"].Items[0].Value("name"))
	assert.Empty(t, s.Records["contacts"].Items[0].Value("name"))
}

func TestSetItemFieldOutOfRangeIsNoOp(t *testing.T) {
	s := Initial()

	assert.Equal(t, s, Apply(s, SetItemField{Section: "contacts", Index: 5, Field: "name", Value: "x"}))
	assert.Equal(t, s, Apply(s, SetItemField{Section: "contacts", Index: -1, Field: "name", Value: "x"}))
	assert.Equal(t, s, Apply(s, SetItemField{Section: "nope", Index: 0, Field: "name", Value: "x"}))
	assert.Equal(t, s, Apply(s, SetItemField{Section: "aboutMe", Index: 0, Field: "fullName", Value: "x"}))
}

func TestAppendAndRemoveItem(t *testing.T) {
	s := Initial()
	firstID := s.Records["contacts"].Items[0].ID

	s = Apply(s, AppendItem{Section: "contacts"})
	require.Len(t, s.Records["contacts"].Items, 2)
	secondID := s.Records["contacts"].Items[1].ID
	assert.NotEqual(t, firstID, secondID, "identity tokens are unique")

	s = Apply(s, RemoveItem{Section: "contacts", Index: 0})
	require.Len(t, s.Records["contacts"].Items, 1)
	assert.Equal(t, secondID, s.Records["contacts"].Items[0].ID, "removal targets by position, survivor keeps its identity")
}

func TestRemoveLastItemIsNoOp(t *testing.T) {
	s := Initial()
	next := Apply(s, RemoveItem{Section: "contacts", Index: 0})

	require.Len(t, next.Records["contacts"].Items, 1)
	assert.Equal(t, s.Records["contacts"].Items[0].ID, next.Records["contacts"].Items[0].ID)
}

func TestRemoveItemOutOfRangeIsNoOp(t *testing.T) {
	s := Apply(Initial(), AppendItem{Section: "contacts"})

	assert.Equal(t, s, Apply(s, RemoveItem{Section: "contacts", Index: 2}))
	assert.Equal(t, s, Apply(s, RemoveItem{Section: "contacts", Index: -1}))
}

func TestSetActiveSection(t *testing.T) {
	s := Initial()

	next := Apply(s, SetActiveSection{Section: "wishes"})
	assert.Equal(t, "wishes", next.CurrentSection)

	// Unknown section leaves the cursor alone.
	same := Apply(next, SetActiveSection{Section: "bogus"})
	assert.Equal(t, "wishes", same.CurrentSection)
}

func TestMarkPersisted(t *testing.T) {
	ts := time.Date(2025, 6, 2, 15, 4, 5, 0, time.FixedZone("PDT", -7*3600))
	next := Apply(Initial(), MarkPersisted{Timestamp: ts})

	assert.Equal(t, "2025-06-02T22:04:05Z", next.LastSaved)
}

func TestResetReturnsInitial(t *testing.T) {
	s := Demo()
	next := Apply(s, Reset{})

	assert.Empty(t, next.Records["aboutMe"].Value("fullName"))
	assert.Len(t, next.Records["contacts"].Items, 1)
	assert.Equal(t, "aboutMe", next.CurrentSection)

	// Reset is idempotent up to identity tokens.
	again := Apply(next, Reset{})
	assert.Equal(t, next.CurrentSection, again.CurrentSection)
	assert.Equal(t, next.Records["aboutMe"].Values, again.Records["aboutMe"].Values)
}

func TestApplyCopiesOnlyTouchedRecord(t *testing.T) {
	s := Initial()
	next := Apply(s, SetField{Section: "aboutMe", Field: "fullName", Value: "Jane"})

	assert.Equal(t, s.Records["wishes"].Values, next.Records["wishes"].Values)
	assert.NotEqual(t, s.Records["aboutMe"].Values, next.Records["aboutMe"].Values)

	// The touched record got its own map; writing through it must not
	// reach the original.
	next.Records["aboutMe"].Values["fullName"] = "changed"
	assert.Empty(t, s.Records["aboutMe"].Value("fullName"))
}

func TestTwoContactsScenario(t *testing.T) {
	s := Initial()
	s = Apply(s, SetItemField{Section: "contacts", Index: 0, Field: "name", Value: "Jane"})
	s = Apply(s, SetItemField{Section: "contacts", Index: 0, Field: "role", Value: "Spouse / Partner"})
	s = Apply(s, AppendItem{Section: "contacts"})
	s = Apply(s, SetItemField{Section: "contacts", Index: 1, Field: "name", Value: "John"})

	items := s.Records["contacts"].Items
	require.Len(t, items, 2)
	assert.Equal(t, "Jane", items[0].Value("name"))
	assert.Equal(t, "John", items[1].Value("name"))
	assert.Empty(t, items[1].Value("role"))
}
