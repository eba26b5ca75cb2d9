package preview

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/layoutcfg/pkg/bundle"
)

// Options configures the diagram.
type Options struct {
	// Scale multiplies coordinates before they are handed to Graphviz.
	// Zero means 1.
	Scale float64
	// Labels overrides the label of individual nodes.
	Labels map[string]string
}

// FromBundle renders the positions of b, labelling nodes with the type of
// the edit component whose "id" matches.
func FromBundle(b bundle.Bundle, opts Options) string {
	labels := make(map[string]string, len(b.Positions))
	for _, c := range b.Edit.Components {
		var desc struct {
			ID   string `json:"id"`
			Type string `json:"type"`
		}
		// Components that are not objects with string fields carry no label.
		if json.Unmarshal(c, &desc) != nil || desc.ID == "" {
			continue
		}
		if desc.Type != "" {
			labels[desc.ID] = desc.ID + "\n" + desc.Type
		}
	}
	maps.Copy(labels, opts.Labels)
	opts.Labels = labels
	return ToDOT(b.Positions, opts)
}

// ToDOT converts a position map to Graphviz DOT with every node pinned.
// Nodes are emitted in id order so the output is stable.
func ToDOT(positions bundle.PositionFile, opts Options) string {
	scale := opts.Scale
	if scale == 0 {
		scale = 1
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("\n")

	for _, id := range slices.Sorted(maps.Keys(positions)) {
		p := positions[id]
		label := id
		if l, ok := opts.Labels[id]; ok {
			label = l
		}
		fmt.Fprintf(&buf, "  %q [label=%q, pos=\"%s,%s!\"];\n", id, label, num(p.X*scale), num(-p.Y*scale))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func num(f float64) string {
	if f == 0 {
		// Avoid "-0".
		f = 0
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// RenderSVG lays out dot with neato, keeping pinned positions, and returns SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized svg tag with a unitless one
// so the diagram scales in a browser.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
