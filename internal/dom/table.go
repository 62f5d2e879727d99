package dom

import "github.com/samber/lo"

// Table is a view over a table container element: the header labels and the
// body rows the observer works against.
type Table struct {
	container *Element
}

// NewTable wraps a container element. The container is expected to hold a
// thead/tbody somewhere beneath it; both are optional.
func NewTable(container *Element) *Table {
	return &Table{container: container}
}

// Container returns the wrapped element.
func (t *Table) Container() *Element {
	return t.container
}

// Headers returns the header-cell texts in column order. Nil when the
// table has no thead.
func (t *Table) Headers() []string {
	thead := t.container.FindTag("thead")
	if thead == nil {
		return nil
	}
	row := thead.FindTag("tr")
	if row == nil {
		return nil
	}
	return lo.Map(row.ChildrenByTag("th"), func(th *Element, _ int) string {
		return th.TextContent()
	})
}

// Rows returns the body rows. Nil when the table has no tbody yet.
func (t *Table) Rows() []*Element {
	tbody := t.container.FindTag("tbody")
	if tbody == nil {
		return nil
	}
	return tbody.ChildrenByTag("tr")
}

// Cells returns a row's direct td children.
func (t *Table) Cells(row *Element) []*Element {
	return row.ChildrenByTag("td")
}
