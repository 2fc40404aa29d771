package model

import "testing"

func TestDiffButtons_NoChanges(t *testing.T) {
	buttons, _ := Reconcile(windows(1, 2), nil, nil)
	states := Snapshot(buttons)
	if changes := DiffButtons(states, states); len(changes) != 0 {
		t.Errorf("expected no changes, got %d", len(changes))
	}
}

func TestDiffButtons_AddedRemovedRetitled(t *testing.T) {
	buttons, m := Reconcile([]Window{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}}, nil, nil)
	prev := Snapshot(buttons)

	next, _ := Reconcile([]Window{{ID: 1, Title: "A2"}, {ID: 3, Title: "C"}}, buttons, m)
	curr := Snapshot(next)

	changes := DiffButtons(prev, curr)
	if len(changes) != 3 {
		t.Fatalf("expected 3 changes, got %d: %+v", len(changes), changes)
	}

	if changes[0].Type != ChangeRetitled || changes[0].OldTitle != "A" || changes[0].Button.Title != "A2" {
		t.Errorf("unexpected first change: %+v", changes[0])
	}
	if changes[1].Type != ChangeAdded || changes[1].Button.Window != 3 || changes[1].Position != 1 {
		t.Errorf("unexpected second change: %+v", changes[1])
	}
	if changes[2].Type != ChangeRemoved || changes[2].Button.Window != 2 || changes[2].Position != -1 {
		t.Errorf("unexpected third change: %+v", changes[2])
	}

	added, removed, retitled := CountChanges(changes)
	if added != 1 || removed != 1 || retitled != 1 {
		t.Errorf("counts: got %d/%d/%d, want 1/1/1", added, removed, retitled)
	}
}

func TestSnapshot_IsDetached(t *testing.T) {
	buttons, _ := Reconcile([]Window{{ID: 1, Title: "A"}}, nil, nil)
	states := Snapshot(buttons)
	buttons[0].Title = "changed"
	if states[0].Title != "A" {
		t.Errorf("snapshot should not follow later writes, got %q", states[0].Title)
	}
}
