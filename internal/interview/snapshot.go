package interview

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/relay-letters/relay/internal/schema"
)

// The snapshot wire format matches the blob the original frontend kept in
// localStorage: one top-level key per section (legacy keys like
// "financialAccounts" included), flat item objects carrying "id", plus
// "lastSaved" and "currentSection". Old exports therefore import cleanly.

// EncodeSnapshot serializes a state to its JSON snapshot form.
func EncodeSnapshot(s State) ([]byte, error) {
	doc := make(map[string]any, len(schema.Sections())+2)
	for _, def := range schema.Sections() {
		sec := schema.Get(def.ID)
		rec := s.Records[sec.ID]
		if sec.Shape == schema.ShapeList {
			items := make([]map[string]string, 0, len(rec.Items))
			for _, it := range rec.Items {
				obj := make(map[string]string, len(it.Values)+1)
				obj["id"] = it.ID
				for k, v := range it.Values {
					obj[k] = v
				}
				items = append(items, obj)
			}
			doc[sec.Key()] = items
			continue
		}
		doc[sec.Key()] = rec.Values
	}
	if s.LastSaved != "" {
		doc["lastSaved"] = s.LastSaved
	} else {
		doc["lastSaved"] = nil
	}
	doc["currentSection"] = s.CurrentSection

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a snapshot and normalizes it into a valid state:
// every schema section present, unknown fields dropped, missing fields
// defaulted, every list holding at least one item, and item identity tokens
// present and unique. Parse failures reject the whole snapshot; per-section
// shape mismatches degrade to that section's empty record.
func DecodeSnapshot(data []byte) (State, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return State{}, fmt.Errorf("decode snapshot: %w", err)
	}

	state := Initial()
	records := make(map[string]Record, len(schema.Sections()))
	for _, def := range schema.Sections() {
		sec := schema.Get(def.ID)
		raw, ok := doc[sec.Key()]
		if !ok {
			records[sec.ID] = newRecord(sec)
			continue
		}
		if sec.Shape == schema.ShapeList {
			records[sec.ID] = decodeListRecord(raw, sec)
		} else {
			records[sec.ID] = decodeGroupRecord(raw, sec)
		}
	}
	state.Records = records

	var meta struct {
		LastSaved      *string `json:"lastSaved"`
		CurrentSection string  `json:"currentSection"`
	}
	if err := json.Unmarshal(data, &meta); err == nil {
		if meta.LastSaved != nil {
			state.LastSaved = *meta.LastSaved
		}
		if meta.CurrentSection != "" && schema.Get(meta.CurrentSection) != nil {
			state.CurrentSection = meta.CurrentSection
		}
	}
	return state, nil
}

func decodeGroupRecord(raw json.RawMessage, sec *schema.Section) Record {
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return newRecord(sec)
	}
	rec := newRecord(sec)
	for _, f := range sec.Fields {
		if v, ok := obj[f.Name].(string); ok {
			rec.Values[f.Name] = v
		}
	}
	return rec
}

func decodeListRecord(raw json.RawMessage, sec *schema.Section) Record {
	var arr []map[string]any
	if err := json.Unmarshal(raw, &arr); err != nil || len(arr) == 0 {
		return newRecord(sec)
	}
	seen := map[string]bool{}
	items := make([]Item, 0, len(arr))
	for _, obj := range arr {
		item := NewItem(sec)
		if id, ok := obj["id"].(string); ok && id != "" && !seen[id] {
			item.ID = id
		} else {
			item.ID = uuid.NewString()
		}
		seen[item.ID] = true
		for _, f := range sec.Fields {
			if v, ok := obj[f.Name].(string); ok {
				item.Values[f.Name] = v
			}
		}
		items = append(items, item)
	}
	return Record{Items: items}
}

// ValidateImport performs the minimal structural check applied to uploaded
// files before they are accepted: the document must be a JSON object with at
// least one known repeatable-section key holding an array. Anything else is
// rejected and the prior state kept.
func ValidateImport(data []byte) error {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("not a JSON object: %w", err)
	}
	for _, def := range schema.Sections() {
		sec := schema.Get(def.ID)
		if sec.Shape != schema.ShapeList {
			continue
		}
		raw, ok := doc[sec.Key()]
		if !ok {
			continue
		}
		var arr []json.RawMessage
		if err := json.Unmarshal(raw, &arr); err == nil {
			return nil
		}
	}
	return fmt.Errorf("no recognizable interview data")
}
