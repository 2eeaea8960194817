package inbox

// fakeBadge is an in-memory BadgeHost that counts mutations.
type fakeBadge struct {
	text    string
	present bool
	sets    int
	removes int
}

func (b *fakeBadge) Badge() (string, bool) { return b.text, b.present }

func (b *fakeBadge) SetBadge(text string) {
	b.text = text
	b.present = true
	b.sets++
}

func (b *fakeBadge) RemoveBadge() {
	b.text = ""
	b.present = false
	b.removes++
}

// fakeList is an in-memory ListContainer; items[0] is the top of the list.
type fakeList struct {
	items []Item
}

func (l *fakeList) Prepend(item Item) {
	l.items = append([]Item{item}, l.items...)
}

func (l *fakeList) Len() int { return len(l.items) }

func (l *fakeList) ids() []string {
	ids := make([]string, len(l.items))
	for i, item := range l.items {
		ids[i] = item.ID
	}
	return ids
}

// fakePage exposes optional targets; nil fields are reported as absent.
type fakePage struct {
	badge *fakeBadge
	list  *fakeList
}

func (p *fakePage) BadgeHost() BadgeHost {
	if p.badge == nil {
		return nil
	}
	return p.badge
}

func (p *fakePage) ListContainer() ListContainer {
	if p.list == nil {
		return nil
	}
	return p.list
}
