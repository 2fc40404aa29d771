package model

// Reconcile computes the next button generation for the incoming window list.
//
// Buttons whose window is still present are reused and retitled, new windows
// get fresh buttons, and buttons for vanished windows are dropped. The result
// lists surviving buttons in their previous order followed by new buttons in
// the order their windows appear in windows. The returned map is rebuilt from
// scratch and holds exactly one entry per window in windows.
//
// If a window ID repeats within windows, the last title wins and only one
// button is produced for it.
func Reconcile(windows []Window, prev []*Button, prevMap ButtonMap) ([]*Button, ButtonMap) {
	nextMap := make(ButtonMap, len(windows))
	var created []*Button

	for _, w := range windows {
		if b, ok := prevMap[w.ID]; ok {
			// Title may have settled since the button was created.
			b.Title = w.Title
			nextMap[w.ID] = b
			continue
		}
		if b, ok := nextMap[w.ID]; ok {
			b.Title = w.Title
			continue
		}
		b := NewButton(w)
		created = append(created, b)
		nextMap[w.ID] = b
	}

	next := make([]*Button, 0, len(nextMap))
	for _, b := range prev {
		// Identity, not membership: a prev button absent from prevMap would otherwise be duplicated.
		if nextMap[b.Window] == b {
			next = append(next, b)
		}
	}
	next = append(next, created...)

	return next, nextMap
}
