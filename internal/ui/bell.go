package ui

import (
	"github.com/nhle/notifywatch/internal/inbox"
	"github.com/nhle/notifywatch/internal/theme"
)

// Bell is the notification trigger in the header. It implements
// inbox.BadgeHost.
type Bell struct {
	text    string
	present bool
}

var _ inbox.BadgeHost = (*Bell)(nil)

// Badge reports the badge text and whether a badge is shown.
func (b *Bell) Badge() (string, bool) {
	return b.text, b.present
}

// SetBadge shows the badge with the given text.
func (b *Bell) SetBadge(text string) {
	b.text = text
	b.present = true
}

// RemoveBadge hides the badge.
func (b *Bell) RemoveBadge() {
	b.text = ""
	b.present = false
}

// View renders the bell and, when present, its badge.
func (b Bell) View() string {
	icon := "🔔"
	if !b.present {
		return icon
	}
	return icon + " " + theme.BadgeStyle.Render(b.text)
}
