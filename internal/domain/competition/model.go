package competition

import (
	"fmt"
	"strings"
)

// Source adapter names a descriptor can route to.
const (
	SourceDSV  = "dsv"
	SourceFile = "file"
)

// Competition is one declarative upstream entry. Seasons, league ids and
// groups live here as data so a new season is a config change, not a code
// fork. Tag is the label rendered as a bracketed prefix in fixture
// descriptions and is part of fixture identity.
type Competition struct {
	ID       string
	Tag      string
	Season   string
	LeagueID string
	Group    string
	Kind     string
	Source   string
}

// Defaults is the club's built-in descriptor table, overridable through
// configuration without touching code.
func Defaults() []Competition {
	return []Competition{
		{ID: "oberliga-nrw", Tag: "Oberliga NRW", Season: "2025", LeagueID: "197", Kind: "L", Source: SourceDSV},
		{ID: "wb-pokal-nrw", Tag: "WB Pokal NRW", Season: "2025", LeagueID: "233", Kind: "P", Source: SourceDSV},
		{ID: "club-events", Source: SourceFile},
	}
}

// ParseSpec parses a descriptor override string. Entries are separated by
// ";", fields inside an entry by "," as key=value pairs:
//
//	id=oberliga-nrw,tag=Oberliga NRW,season=2025,league=197,kind=L
//
// Unknown keys are rejected so typos fail loudly at startup. Source defaults
// to "dsv" when omitted; id is mandatory.
func ParseSpec(raw string) ([]Competition, error) {
	out := make([]Competition, 0, 4)
	for _, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		comp := Competition{Source: SourceDSV}
		for _, field := range strings.Split(entry, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}

			segments := strings.SplitN(field, "=", 2)
			if len(segments) != 2 {
				return nil, fmt.Errorf("invalid field %q in entry %q, expected key=value", field, entry)
			}

			key := strings.TrimSpace(segments[0])
			value := strings.TrimSpace(segments[1])
			switch key {
			case "id":
				comp.ID = value
			case "tag":
				comp.Tag = value
			case "season":
				comp.Season = value
			case "league":
				comp.LeagueID = value
			case "group":
				comp.Group = value
			case "kind":
				comp.Kind = value
			case "source":
				comp.Source = value
			default:
				return nil, fmt.Errorf("unknown field %q in entry %q", key, entry)
			}
		}

		if comp.ID == "" {
			return nil, fmt.Errorf("entry %q has no id", entry)
		}
		if comp.Source != SourceDSV && comp.Source != SourceFile {
			return nil, fmt.Errorf("entry %q has unknown source %q", entry, comp.Source)
		}

		out = append(out, comp)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no competition entries in %q", raw)
	}

	return out, nil
}
