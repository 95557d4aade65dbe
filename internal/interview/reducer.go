package interview

import (
	"time"

	"github.com/relay-letters/relay/internal/schema"
)

// Apply is the pure transition function: it returns a new State and never
// mutates its input. Shape mismatches, unknown sections, and out-of-range
// indices are deliberate no-ops — the frontend dispatches from its own
// rendered view of the state, so stale closures make these expected.
func Apply(state State, action Action) State {
	switch a := action.(type) {
	case SetField:
		sec := schema.Get(a.Section)
		if sec == nil || sec.Shape != schema.ShapeGroup {
			return state
		}
		rec := state.Records[a.Section].clone()
		if rec.Values == nil {
			rec.Values = map[string]string{}
		}
		rec.Values[a.Field] = a.Value
		return state.withRecord(a.Section, rec)

	case SetItemField:
		sec := schema.Get(a.Section)
		if sec == nil || sec.Shape != schema.ShapeList {
			return state
		}
		items := state.Records[a.Section].Items
		if a.Index < 0 || a.Index >= len(items) {
			return state
		}
		rec := state.Records[a.Section].clone()
		rec.Items[a.Index].Values[a.Field] = a.Value
		return state.withRecord(a.Section, rec)

	case AppendItem:
		sec := schema.Get(a.Section)
		if sec == nil || sec.Shape != schema.ShapeList {
			return state
		}
		rec := state.Records[a.Section].clone()
		rec.Items = append(rec.Items, NewItem(sec))
		return state.withRecord(a.Section, rec)

	case RemoveItem:
		sec := schema.Get(a.Section)
		if sec == nil || sec.Shape != schema.ShapeList {
			return state
		}
		items := state.Records[a.Section].Items
		// Lists never go empty: removing the last item is a no-op so the
		// frontend always has a row to edit.
		if len(items) <= 1 || a.Index < 0 || a.Index >= len(items) {
			return state
		}
		rec := state.Records[a.Section].clone()
		rec.Items = append(rec.Items[:a.Index], rec.Items[a.Index+1:]...)
		return state.withRecord(a.Section, rec)

	case SetActiveSection:
		if schema.Get(a.Section) == nil {
			return state
		}
		state.CurrentSection = a.Section
		return state

	case MarkPersisted:
		state.LastSaved = a.Timestamp.UTC().Format(time.RFC3339)
		return state

	case LoadSnapshot:
		return a.State

	case Reset:
		return Initial()

	default:
		return state
	}
}
