package bundle

import (
	"bytes"
	"encoding/json"
)

// Component is an opaque component descriptor produced by the layout editor.
// It holds the raw JSON value in compact form and is written back unchanged,
// so key order and number literals survive a decode/encode round trip.
type Component = json.RawMessage

// ConfigFile is the edit or view configuration of a layout.
type ConfigFile struct {
	Components []Component `json:"components"`
}

// MarshalJSON encodes a nil component list as [] so that the components
// field is always present. HTML characters are not escaped.
func (c ConfigFile) MarshalJSON() ([]byte, error) {
	type plain ConfigFile
	if c.Components == nil {
		c.Components = []Component{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(plain(c)); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// UnmarshalJSON accepts any JSON values as components and stores each one
// compacted.
func (c *ConfigFile) UnmarshalJSON(data []byte) error {
	type plain ConfigFile
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	for i, comp := range p.Components {
		var buf bytes.Buffer
		if err := json.Compact(&buf, comp); err != nil {
			return err
		}
		p.Components[i] = buf.Bytes()
	}
	*c = ConfigFile(p)
	return nil
}

// Len returns the number of components.
func (c ConfigFile) Len() int { return len(c.Components) }

// Position is a 2D canvas coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PositionFile maps node identifiers to their canvas coordinates.
type PositionFile map[string]Position

// Bundle is one consistent set of edit config, view config and positions.
//
// A Bundle returned by a resolver was always read from three files sharing
// the same version suffix.
type Bundle struct {
	Edit      ConfigFile   `json:"edit"`
	View      ConfigFile   `json:"view"`
	Positions PositionFile `json:"positions"`
}

// NewConfig returns a configuration with an empty component list.
func NewConfig() ConfigFile {
	return ConfigFile{Components: []Component{}}
}

// NewPositions returns an empty position map.
func NewPositions() PositionFile {
	return PositionFile{}
}

// Empty returns a bundle whose members are all empty. Callers start from it
// when no previously exported bundle can be found.
func Empty() Bundle {
	return Bundle{
		Edit:      NewConfig(),
		View:      NewConfig(),
		Positions: NewPositions(),
	}
}

// Member returns the value stored for m, suitable for [Encode]. Nil
// positions are returned as an empty map.
func (b Bundle) Member(m Member) any {
	switch m {
	case Edit:
		return b.Edit
	case View:
		return b.View
	case Positions:
		if b.Positions == nil {
			return NewPositions()
		}
		return b.Positions
	}
	return nil
}
