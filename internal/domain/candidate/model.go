package candidate

// Kind discriminates the two record shapes the pipeline understands.
type Kind string

const (
	KindFixture Kind = "fixture"
	KindEvent   Kind = "event"
)

// Record is one raw, not-yet-validated scrape hit as produced by a source
// adapter. Fields are upstream text verbatim; normalization and date
// resolution happen during reconciliation, and a Record never outlives the
// batch that carried it.
type Record struct {
	Kind        Kind
	Home        string
	Guest       string
	Title       string
	RawDate     string
	RawTime     string
	Location    string
	Result      string
	Description string
	Competition string
	DetailURL   string
}

// Detail carries optional per-fixture enrichment from a secondary lookup.
// Every field may be empty; absence degrades to the base candidate fields.
type Detail struct {
	Result       string
	Referees     string
	VenueAddress string
	VenueMapURL  string
}

// Empty reports whether the lookup produced nothing usable.
func (d Detail) Empty() bool {
	return d.Result == "" && d.Referees == "" && d.VenueAddress == "" && d.VenueMapURL == ""
}
