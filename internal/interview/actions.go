package interview

import (
	"encoding/json"
	"fmt"
	"time"
)

// Action is the closed vocabulary of state transitions. Every action is
// total: invalid targets degrade to no-ops inside Apply, never errors.
type Action interface {
	isAction()
}

// SetField sets one field of a fixed-group section.
type SetField struct {
	Section string
	Field   string
	Value   string
}

// SetItemField sets one field of an item in a repeatable-list section.
type SetItemField struct {
	Section string
	Index   int
	Field   string
	Value   string
}

// AppendItem appends a fresh placeholder item to a repeatable-list section.
type AppendItem struct {
	Section string
}

// RemoveItem removes the item at Index unless the list would become empty.
type RemoveItem struct {
	Section string
	Index   int
}

// SetActiveSection moves the resume cursor.
type SetActiveSection struct {
	Section string
}

// MarkPersisted records when the state was last written to storage.
type MarkPersisted struct {
	Timestamp time.Time
}

// LoadSnapshot replaces the entire state wholesale. Callers are expected to
// have run the snapshot through Normalize (or DecodeSnapshot) first.
type LoadSnapshot struct {
	State State
}

// Reset returns the canonical all-empty initial state.
type Reset struct{}

func (SetField) isAction()         {}
func (SetItemField) isAction()     {}
func (AppendItem) isAction()       {}
func (RemoveItem) isAction()       {}
func (SetActiveSection) isAction() {}
func (MarkPersisted) isAction()    {}
func (LoadSnapshot) isAction()     {}
func (Reset) isAction()            {}

// ActionRequest is the wire form of an editing action as dispatched by the
// frontend over REST or the WebSocket channel. Bulk operations (import,
// demo, reset) have dedicated endpoints and are not expressible here.
type ActionRequest struct {
	Type    string `json:"type"`
	Section string `json:"section,omitempty"`
	Field   string `json:"field,omitempty"`
	Index   *int   `json:"index,omitempty"`
	Value   string `json:"value,omitempty"`
}

// ParseAction converts a wire request into an Action.
func ParseAction(req ActionRequest) (Action, error) {
	index := 0
	if req.Index != nil {
		index = *req.Index
	}
	switch req.Type {
	case "setField":
		return SetField{Section: req.Section, Field: req.Field, Value: req.Value}, nil
	case "setItemField":
		if req.Index == nil {
			return nil, fmt.Errorf("setItemField requires an index")
		}
		return SetItemField{Section: req.Section, Index: index, Field: req.Field, Value: req.Value}, nil
	case "appendItem":
		return AppendItem{Section: req.Section}, nil
	case "removeItem":
		if req.Index == nil {
			return nil, fmt.Errorf("removeItem requires an index")
		}
		return RemoveItem{Section: req.Section, Index: index}, nil
	case "setActiveSection":
		return SetActiveSection{Section: req.Section}, nil
	default:
		return nil, fmt.Errorf("unknown action type %q", req.Type)
	}
}

// DecodeActionRequest parses a JSON-encoded wire action.
func DecodeActionRequest(data []byte) (ActionRequest, error) {
	var req ActionRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return ActionRequest{}, fmt.Errorf("decode action: %w", err)
	}
	return req, nil
}
