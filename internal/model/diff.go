package model

import "github.com/google/uuid"

// ChangeType represents the kind of button change between two publications.
type ChangeType string

const (
	ChangeAdded    ChangeType = "added"
	ChangeRemoved  ChangeType = "removed"
	ChangeRetitled ChangeType = "retitled"
)

// ButtonChange represents a single change between two publications.
type ButtonChange struct {
	Type     ChangeType  `yaml:"type"               json:"type"`
	Button   ButtonState `yaml:"button"             json:"button"`
	Position int         `yaml:"pos"                json:"pos"`                // Index in the newer publication; -1 for removed
	OldTitle string      `yaml:"oldTitle,omitempty" json:"oldTitle,omitempty"` // For retitled
}

// DiffButtons compares two publications and returns the changes.
// Buttons are matched by their ID, so a window that lost its button and got a
// new one shows up as removed plus added.
func DiffButtons(prev, curr []ButtonState) []ButtonChange {
	prevByID := make(map[uuid.UUID]ButtonState, len(prev))
	for _, b := range prev {
		prevByID[b.ID] = b
	}
	currIDs := make(map[uuid.UUID]bool, len(curr))
	for _, b := range curr {
		currIDs[b.ID] = true
	}

	var changes []ButtonChange

	for i, b := range curr {
		old, existed := prevByID[b.ID]
		if !existed {
			changes = append(changes, ButtonChange{Type: ChangeAdded, Button: b, Position: i})
			continue
		}
		if old.Title != b.Title {
			changes = append(changes, ButtonChange{
				Type:     ChangeRetitled,
				Button:   b,
				Position: i,
				OldTitle: old.Title,
			})
		}
	}

	for _, b := range prev {
		if !currIDs[b.ID] {
			changes = append(changes, ButtonChange{Type: ChangeRemoved, Button: b, Position: -1})
		}
	}

	return changes
}

// CountChanges tallies changes by type.
func CountChanges(changes []ButtonChange) (added, removed, retitled int) {
	for _, c := range changes {
		switch c.Type {
		case ChangeAdded:
			added++
		case ChangeRemoved:
			removed++
		case ChangeRetitled:
			retitled++
		}
	}
	return added, removed, retitled
}
