package bundle

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Encode marshals v as two-space indented JSON followed by a newline.
// Like JSON.stringify, it leaves <, > and & unescaped.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeConfig parses an edit or view configuration. Components may be any
// JSON values. A document without a components field decodes to an empty
// component list.
func DecodeConfig(data []byte) (ConfigFile, error) {
	var c ConfigFile
	if err := json.Unmarshal(data, &c); err != nil {
		return ConfigFile{}, fmt.Errorf("decode config: %w", err)
	}
	if c.Components == nil {
		c.Components = []Component{}
	}
	return c, nil
}

// DecodePositions parses a position map. A JSON null decodes to an empty map.
func DecodePositions(data []byte) (PositionFile, error) {
	var p PositionFile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode positions: %w", err)
	}
	if p == nil {
		p = NewPositions()
	}
	return p, nil
}

// DecodeBundle parses a combined document with "edit", "view" and
// "positions" keys. Absent or null members decode empty.
func DecodeBundle(data []byte) (Bundle, error) {
	var raw struct {
		Edit      json.RawMessage `json:"edit"`
		View      json.RawMessage `json:"view"`
		Positions json.RawMessage `json:"positions"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Bundle{}, fmt.Errorf("decode bundle: %w", err)
	}

	b := Empty()
	var err error
	if len(raw.Edit) > 0 {
		if b.Edit, err = DecodeConfig(raw.Edit); err != nil {
			return Bundle{}, fmt.Errorf("edit: %w", err)
		}
	}
	if len(raw.View) > 0 {
		if b.View, err = DecodeConfig(raw.View); err != nil {
			return Bundle{}, fmt.Errorf("view: %w", err)
		}
	}
	if len(raw.Positions) > 0 {
		if b.Positions, err = DecodePositions(raw.Positions); err != nil {
			return Bundle{}, fmt.Errorf("positions: %w", err)
		}
	}
	return b, nil
}
