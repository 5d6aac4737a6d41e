package event

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// DefaultDuration is the assumed length of a club event.
const DefaultDuration = 3 * time.Hour

// Event is a single-sided canonical entry, e.g. a club function, with no
// home/guest split. Date and Time are canonical text like on Fixture.
type Event struct {
	Identity     string
	DisplayNo    int
	Title        string
	Date         string
	Time         string
	Location     string
	Description  string
	LastModified time.Time
	CreatedAt    time.Time
}

// Identity derives the stable event key: lowercase hex SHA-256 over the
// normalized title and the raw, unparsed date text joined with "|". Keying
// on the raw date text is deliberate and long-standing: the resolver runs
// after identity lookup on the event path, so respelling the same date
// ("20.12.2025" vs "20.12.25") yields a distinct entry.
func Identity(title, rawDate string) string {
	sum := sha256.Sum256([]byte(title + "|" + rawDate))
	return hex.EncodeToString(sum[:])
}

// Summary is the human-facing one-liner used in listings and as the
// calendar entry title.
func (e Event) Summary() string {
	return "[EVENT] " + e.Title
}
