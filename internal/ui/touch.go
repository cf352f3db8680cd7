package ui

import (
	"gioui.org/io/pointer"

	"github.com/OpenTraceLab/OpenTraceOverlay/pkg/overlay"
)

// contactSink receives contact set changes. *overlay.Controller implements it.
type contactSink interface {
	ContactsChanged(points []overlay.Contact)
	ContactsMoved(points []overlay.Contact)
	ContactsEnded()
}

// ContactTracker turns Gio pointer events into the ordered contact list the
// gesture interpreter expects. Contacts are kept in press order, so the first
// two pressed drive a pinch.
type ContactTracker struct {
	sink     contactSink
	contacts []overlay.Contact
}

// NewContactTracker returns a tracker feeding sink.
func NewContactTracker(sink contactSink) *ContactTracker {
	return &ContactTracker{sink: sink}
}

// Contacts returns a copy of the active contacts in press order.
func (t *ContactTracker) Contacts() []overlay.Contact {
	out := make([]overlay.Contact, len(t.contacts))
	copy(out, t.contacts)
	return out
}

// Active reports whether any contact is down.
func (t *ContactTracker) Active() bool {
	return len(t.contacts) > 0
}

// Update processes one pointer event and reports whether it changed the
// contact set or moved a contact.
func (t *ContactTracker) Update(ev pointer.Event) bool {
	id := int(ev.PointerID)
	switch ev.Kind {
	case pointer.Press:
		if !tracked(ev) {
			return false
		}
		if t.index(id) >= 0 {
			// A repeated press for a live id is a move.
			return t.move(id, ev)
		}
		t.contacts = append(t.contacts, contactOf(id, ev))
		t.sink.ContactsChanged(t.Contacts())
		return true

	case pointer.Drag:
		return t.move(id, ev)

	case pointer.Release:
		i := t.index(id)
		if i < 0 {
			return false
		}
		t.contacts = append(t.contacts[:i], t.contacts[i+1:]...)
		if len(t.contacts) == 0 {
			t.sink.ContactsEnded()
		} else {
			t.sink.ContactsChanged(t.Contacts())
		}
		return true

	case pointer.Cancel:
		// Cancel applies to every pointer of the handler.
		if len(t.contacts) == 0 {
			return false
		}
		t.contacts = t.contacts[:0]
		t.sink.ContactsEnded()
		return true
	}
	return false
}

// Reset drops all contacts without notifying the sink.
func (t *ContactTracker) Reset() {
	t.contacts = t.contacts[:0]
}

func (t *ContactTracker) move(id int, ev pointer.Event) bool {
	i := t.index(id)
	if i < 0 {
		return false
	}
	c := contactOf(id, ev)
	if t.contacts[i] == c {
		return false
	}
	t.contacts[i] = c
	t.sink.ContactsMoved(t.Contacts())
	return true
}

func (t *ContactTracker) index(id int) int {
	for i, c := range t.contacts {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// tracked accepts every touch press and primary-button mouse presses.
func tracked(ev pointer.Event) bool {
	if ev.Source == pointer.Touch {
		return true
	}
	return ev.Buttons.Contain(pointer.ButtonPrimary)
}

func contactOf(id int, ev pointer.Event) overlay.Contact {
	return overlay.Contact{ID: id, X: float64(ev.Position.X), Y: float64(ev.Position.Y)}
}
