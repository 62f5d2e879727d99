package bridge

import "github.com/SPACEX-2022/superapp-cli/internal/dom"

// Frame types exchanged with the page companion script.
const (
	// page -> cli
	frameSnapshot = "snapshot"
	frameClick    = "click"

	// cli -> page
	frameInject = "inject"
	frameNotify = "notify"
)

// frame is the single wire shape for both directions; unused fields stay
// empty.
type frame struct {
	Type string `json:"type"`

	// snapshot
	DOM *dom.Element `json:"dom,omitempty"`

	// click / inject
	ActionID string `json:"actionId,omitempty"`

	// inject
	RowIndex int      `json:"rowIndex,omitempty"`
	Label    string   `json:"label,omitempty"`
	Classes  []string `json:"classes,omitempty"`

	// notify
	Level   string `json:"level,omitempty"`
	Content string `json:"content,omitempty"`
}
