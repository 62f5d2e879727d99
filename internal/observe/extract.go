package observe

import (
	"github.com/samber/lo"

	"github.com/SPACEX-2022/superapp-cli/internal/dom"
	"github.com/SPACEX-2022/superapp-cli/internal/game"
)

// reservedKeys are filled from specific elements and never overwritten by
// the positional header mapping.
var reservedKeys = []string{"iconUrl", "localizedName", "appId", "cnName"}

// ExtractRow scrapes one table row into a loosely-typed field set.
// Everything is best-effort: a missing element leaves its key absent rather
// than failing the row.
//
// The icon URL comes from the first cell's img, the display name (doubling
// as cnName) from the first cell's span, and the app identifier from the
// second cell's span. Remaining columns are mapped positionally from the
// header labels, but only when the header count matches the cell count.
func ExtractRow(table *dom.Table, row *dom.Element) game.Row {
	extracted := game.Row{}
	cells := table.Cells(row)

	if len(cells) >= 2 {
		first := cells[0]
		if img := first.FindTag("img"); img != nil && img.Attr("src") != "" {
			extracted["iconUrl"] = img.Attr("src")
		}
		if span := first.FindTag("span"); span != nil {
			name := span.TextContent()
			extracted["localizedName"] = name
			extracted["cnName"] = name
		}
		if span := cells[1].FindTag("span"); span != nil {
			extracted["appId"] = span.TextContent()
		}
	}

	headers := table.Headers()
	if len(headers) != len(cells) {
		return extracted
	}
	for i, cell := range cells {
		label := headers[i]
		if label == "" || lo.Contains(reservedKeys, label) {
			continue
		}
		extracted[label] = cell.TextContent()
	}
	return extracted
}
