package bundle

import (
	"fmt"
	"strconv"
	"strings"
)

// Member identifies one of the three files of a bundle.
type Member int

const (
	Edit Member = iota
	View
	Positions
)

// Members lists the bundle members in export order.
var Members = [...]Member{Edit, View, Positions}

// Fixed base names and extension of the bundle files.
const (
	EditBase      = "componentConfig_edit"
	ViewBase      = "componentConfig_view"
	PositionsBase = "componentPositions"
	Ext           = ".json"
)

// Base returns the file base name of m, without extension.
func (m Member) Base() string {
	switch m {
	case Edit:
		return EditBase
	case View:
		return ViewBase
	case Positions:
		return PositionsBase
	}
	return ""
}

// String returns a short lowercase label for logs.
func (m Member) String() string {
	switch m {
	case Edit:
		return "edit"
	case View:
		return "view"
	case Positions:
		return "positions"
	}
	return "member(" + strconv.Itoa(int(m)) + ")"
}

// SuffixFor maps a version number to the duplicate marker inserted before
// the file extension. Version 1 is the unmarked primary copy; every other
// version, including 0, is rendered as " (N)".
func SuffixFor(version int) string {
	if version == 1 {
		return ""
	}
	return fmt.Sprintf(" (%d)", version)
}

// FileName returns the filename of member m at the given version.
func FileName(m Member, version int) string {
	return m.Base() + SuffixFor(version) + Ext
}

// FileNames returns the edit, view and positions filenames for a version.
func FileNames(version int) [3]string {
	var names [3]string
	for i, m := range Members {
		names[i] = FileName(m, version)
	}
	return names
}

// ParseFileName reports which member and version produced name. It accepts
// exactly the names [FileName] generates, with any non-negative version.
func ParseFileName(name string) (m Member, version int, ok bool) {
	stem, found := strings.CutSuffix(name, Ext)
	if !found {
		return 0, 0, false
	}
	for _, m := range Members {
		rest, found := strings.CutPrefix(stem, m.Base())
		if !found {
			continue
		}
		if rest == "" {
			return m, 1, true
		}
		digits, found := strings.CutPrefix(rest, " (")
		if !found {
			continue
		}
		digits, found = strings.CutSuffix(digits, ")")
		if !found || digits == "" {
			continue
		}
		v, err := strconv.Atoi(digits)
		if err != nil || v < 0 || strconv.Itoa(v) != digits || v == 1 {
			continue
		}
		return m, v, true
	}
	return 0, 0, false
}
