// Package bundle defines the three layout configuration artifacts and the
// naming convention under which they are stored.
//
// # Overview
//
// A [Bundle] is one saved state of a visual component layout:
//
//   - Edit: the [ConfigFile] used by the editor
//   - View: the [ConfigFile] used by the read-only view
//   - Positions: the [PositionFile] mapping node ids to canvas coordinates
//
// The three members are always persisted as three separate JSON files with
// fixed base names:
//
//	componentConfig_edit.json
//	componentConfig_view.json
//	componentPositions.json
//
// # Duplicate Suffixes
//
// Repeated exports into the same folder accumulate duplicate markers. A
// logical version number maps to a filename modifier through [SuffixFor]:
// version 1 is the bare base name, every other version gets " (N)" inserted
// before the extension:
//
//	FileName(Edit, 1)  // "componentConfig_edit.json"
//	FileName(Edit, 7)  // "componentConfig_edit (7).json"
//	FileName(Edit, 0)  // "componentConfig_edit (0).json"
//
// [ParseFileName] is the inverse for names produced by this convention.
//
// # Encoding
//
// Members are encoded as two-space indented JSON by [Encode] and decoded by
// [DecodeConfig] and [DecodePositions]. An empty component list is always
// encoded as [] and never as null.
package bundle
