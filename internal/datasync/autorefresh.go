package datasync

// AutoRefresh invokes refresh whenever an event whose type is in types
// reaches this context, from any origin and any action kind, including this
// context's own broadcasts. An empty interest set never fires. The returned
// stop function unsubscribes and must be called when the owning surface goes
// away so stale callbacks cannot fire into it.
func (b *Bus) AutoRefresh(types []EventType, refresh func()) func() {
	interest := make(map[EventType]bool, len(types))
	for _, t := range types {
		interest[t] = true
	}

	return b.Subscribe(func(ev Event) {
		if interest[ev.Type] {
			refresh()
		}
	})
}
