package urgency

import (
	"fmt"
	"strings"
)

// Bucket is a discrete triage tier derived from the days left until a task
// is due. Lower values are more urgent.
type Bucket int

const (
	Today Bucket = iota
	Urgent
	Worrying
	Nice
	Nevermind
)

var bucketNames = [...]string{
	Today:     "today",
	Urgent:    "urgent",
	Worrying:  "worrying",
	Nice:      "nice",
	Nevermind: "nevermind",
}

// Buckets lists every bucket from most to least urgent.
func Buckets() []Bucket {
	return []Bucket{Today, Urgent, Worrying, Nice, Nevermind}
}

// String returns the lower-case bucket name.
func (b Bucket) String() string {
	if b < Today || b > Nevermind {
		return fmt.Sprintf("bucket(%d)", int(b))
	}
	return bucketNames[b]
}

// MoreUrgentThan reports whether b ranks ahead of other.
func (b Bucket) MoreUrgentThan(other Bucket) bool {
	return b < other
}

// MarshalText encodes the bucket by name so JSON, YAML and CBOR output stay readable.
func (b Bucket) MarshalText() ([]byte, error) {
	if b < Today || b > Nevermind {
		return nil, fmt.Errorf("urgency: invalid bucket %d", int(b))
	}
	return []byte(bucketNames[b]), nil
}

// UnmarshalText decodes a bucket name.
func (b *Bucket) UnmarshalText(text []byte) error {
	parsed, err := ParseBucket(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// ParseBucket converts a bucket name, case-insensitively.
func ParseBucket(name string) (Bucket, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range bucketNames {
		if n == name {
			return Bucket(i), nil
		}
	}
	return Nevermind, fmt.Errorf("urgency: unknown bucket %q", name)
}

// Color is the display colour associated with a bucket.
type Color string

const (
	ColorRed    Color = "red"
	ColorOrange Color = "orange"
	ColorYellow Color = "yellow"
	ColorGreen  Color = "green"
	ColorBlue   Color = "blue"
)

// Color returns the badge colour for the bucket.
func (b Bucket) Color() Color {
	switch b {
	case Today:
		return ColorRed
	case Urgent:
		return ColorOrange
	case Worrying:
		return ColorYellow
	case Nice:
		return ColorGreen
	default:
		return ColorBlue
	}
}
