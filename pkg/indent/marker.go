package indent

import (
	"github.com/yaklabco/mdindent/pkg/mdast"
)

// MarkerWidth returns the columns taken by a list item's marker and the
// whitespace after it, re-scanned from the raw line at the item's column.
// It returns 0 for nodes that are not list items or whose line holds no
// marker at that column.
func MarkerWidth(item *mdast.Node, lines Lines) int {
	if item == nil || item.Kind != mdast.NodeListItem || lines == nil {
		return 0
	}

	col := item.Indent()
	if col < 0 {
		return 0
	}

	marker, ok := mdast.ParseListMarker(lines.LineContent(item.StartLine()), col)
	if !ok {
		return 0
	}
	return marker.Width()
}
