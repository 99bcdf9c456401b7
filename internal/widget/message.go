package widget

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	"deadlines/internal/urgency"
)

// Message is one task as a widget renders it.
type Message struct {
	ID       string         `cbor:"id"`
	Title    string         `cbor:"title"`
	Category string         `cbor:"category,omitempty"`
	Bucket   urgency.Bucket `cbor:"bucket"`
	Color    urgency.Color  `cbor:"color"`
	DaysLeft int            `cbor:"days_left"`
	HasDue   bool           `cbor:"has_due"`
}

// NewMessage builds a message from a task's identity and its assessment.
// The id travels in its canonical text form.
func NewMessage(id uuid.UUID, title, category string, a urgency.Assessment) Message {
	return Message{
		ID:       id.String(),
		Title:    title,
		Category: category,
		Bucket:   a.Bucket,
		Color:    a.Color(),
		DaysLeft: a.Remaining,
		HasDue:   a.HasDue,
	}
}

// DaysLeftText is the short label shown under the title.
func (m Message) DaysLeftText() string {
	if !m.HasDue {
		return "-"
	}
	return strconv.Itoa(m.DaysLeft)
}

// Digest is the full widget payload: the open tasks due within a window,
// most urgent first, and the number already past due.
type Digest struct {
	GeneratedAt time.Time `cbor:"generated_at"`
	WindowDays  int       `cbor:"window_days"`
	Expired     int       `cbor:"expired"`
	Messages    []Message `cbor:"messages"`
}

// Len returns the number of messages.
func (d *Digest) Len() int {
	return len(d.Messages)
}
