package fixture

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// DefaultDuration is the assumed length of a match. Upstream never carries
// an end time, so calendar entries always run start plus this.
const DefaultDuration = 2 * time.Hour

// Fixture is the canonical, identity-keyed representation of one match.
// Date and Time are canonical text (YYYY-MM-DD, HH:MM) as produced by the
// resolver; Time may be empty for fixtures announced without a throw-off
// time. Result, Referees, VenueAddress and VenueMapURL are stored as
// separate fields and only composed into a description when rendering.
type Fixture struct {
	Identity     string
	DisplayNo    int
	Competition  string
	Home         string
	Guest        string
	Date         string
	Time         string
	Location     string
	Result       string
	Referees     string
	VenueAddress string
	VenueMapURL  string
	DetailURL    string
	LastModified time.Time
	CreatedAt    time.Time
}

// Identity derives the stable fixture key: lowercase hex SHA-256 over the
// competition tag, normalized home name and normalized guest name, in that
// order, joined with "|" and hashed as UTF-8 bytes. The tuple layout is a
// compatibility contract across releases; changing it re-keys every stored
// record and churns every subscriber.
func Identity(competitionTag, home, guest string) string {
	sum := sha256.Sum256([]byte(competitionTag + "|" + home + "|" + guest))
	return hex.EncodeToString(sum[:])
}

// Summary is the human-facing one-liner used in listings and as the
// calendar entry title.
func (f Fixture) Summary() string {
	return f.Home + " vs " + f.Guest
}

// Description composes the multi-line operator-facing body. The bracketed
// competition label exists only here, never in stored fields, so tag
// renames cannot desynchronize stored text.
func (f Fixture) Description() string {
	lines := make([]string, 0, 3)
	if f.Competition != "" {
		lines = append(lines, "["+f.Competition+"]")
	}
	if f.Result != "" {
		lines = append(lines, "Result: "+f.Result)
	}
	if f.Referees != "" {
		lines = append(lines, "Referees: "+f.Referees)
	}

	return strings.Join(lines, "\n")
}

// HasResult reports whether a final score has been observed.
func (f Fixture) HasResult() bool {
	return strings.TrimSpace(f.Result) != ""
}
