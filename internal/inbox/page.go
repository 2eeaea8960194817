package inbox

// BadgeHost is the notification trigger that can carry an unread-count
// badge.
type BadgeHost interface {
	// Badge reports the current badge text and whether a badge exists.
	Badge() (string, bool)

	// SetBadge creates the badge if needed and sets its text.
	SetBadge(text string)

	// RemoveBadge removes the badge.
	RemoveBadge()
}

// ListContainer is the newest-first list rendered items are inserted into.
type ListContainer interface {
	// Prepend inserts item as the new first element.
	Prepend(item Item)

	// Len returns the number of items currently in the list.
	Len() int
}

// Page gives a poll cycle access to its targets. Both are looked up on
// every cycle and either may be nil when it is not currently on screen.
type Page interface {
	BadgeHost() BadgeHost
	ListContainer() ListContainer
}
