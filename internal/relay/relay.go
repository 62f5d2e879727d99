// Package relay carries messages between the page-side observer, the
// coordinator, and whatever UI surface is active. Delivery is asynchronous,
// at-most-once and unordered; senders never learn whether anyone listened.
package relay

import (
	"github.com/google/uuid"

	"github.com/SPACEX-2022/superapp-cli/internal/game"
)

// Kind discriminates the two message types on the bus.
type Kind string

const (
	// KindOpenGameForm asks the coordinator to open a creation form
	// pre-filled with a scraped row.
	KindOpenGameForm Kind = "OPEN_GAME_FORM"

	// KindShowMessage asks the coordinator to surface a transient
	// notification on the active surface.
	KindShowMessage Kind = "SHOW_MESSAGE"
)

// Level classifies a notification for display.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification is a user-visible transient message.
type Notification struct {
	Level   Level  `json:"level"`
	Content string `json:"content"`
}

// Message is one relay frame. Row is set for KindOpenGameForm, Note for
// KindShowMessage.
type Message struct {
	ID   string
	Kind Kind
	Row  game.Row
	Note Notification
}

// OpenGameForm builds an open-form message for a scraped row.
func OpenGameForm(row game.Row) Message {
	return Message{ID: uuid.NewString(), Kind: KindOpenGameForm, Row: row}
}

// ShowMessage builds a notification message.
func ShowMessage(level Level, content string) Message {
	return Message{ID: uuid.NewString(), Kind: KindShowMessage, Note: Notification{Level: level, Content: content}}
}
