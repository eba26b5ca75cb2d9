// Package preview draws a position map as an SVG diagram.
//
// Every node of a [bundle.PositionFile] becomes a box pinned at its stored
// coordinates, so the picture matches what the layout editor shows. Screen
// coordinates grow downwards; the DOT output flips y for Graphviz.
//
// Labels default to the node id. [FromBundle] adds the component type from
// the edit configuration when a component's "id" matches the node.
//
//	dot := preview.FromBundle(b, preview.Options{})
//	svg, err := preview.RenderSVG(ctx, dot)
package preview
