package names

import (
	"regexp"
	"strings"
)

// clubVariants maps drifting upstream spellings to one canonical club name.
// Keys are compared lowercase after whitespace collapsing, with any trailing
// roman-numeral team suffix split off first and re-appended unchanged.
var clubVariants = map[string]string{
	"sgw essen":               "SG Wasserball Essen",
	"sg w essen":              "SG Wasserball Essen",
	"sgw essen 06":            "SG Wasserball Essen",
	"sg wasserball essen":     "SG Wasserball Essen",
	"sg wasserball essen 06":  "SG Wasserball Essen",
	"wasserball essen":        "SG Wasserball Essen",
	"asc duisburg":            "ASC Duisburg 98",
	"asc duisburg 98":         "ASC Duisburg 98",
	"duisburg 98":             "ASC Duisburg 98",
	"sv bayer uerdingen":      "SV Bayer Uerdingen 08",
	"sv bayer uerdingen 08":   "SV Bayer Uerdingen 08",
	"bayer uerdingen":         "SV Bayer Uerdingen 08",
	"aegir uerdingen":         "SV Aegir Uerdingen",
	"sv aegir uerdingen":      "SV Aegir Uerdingen",
}

var (
	leadingRowNumber = regexp.MustCompile(`^\d+[^\p{L}\d]*`)
	whitespaceRun    = regexp.MustCompile(`\s+`)
	foundingYear     = regexp.MustCompile(`\b(18|19|20)\d{2}\b`)
	romanSuffix      = regexp.MustCompile(`\s+(III|II|I)$`)
	digitsOnly       = regexp.MustCompile(`^\d+$`)
)

// Normalize canonicalizes a raw participant or title string so cosmetic
// upstream variation does not change record identity. Rules, in order:
// strip a leading row-number token that upstream markup leaks into name
// cells, collapse whitespace runs, map known club-name variants to their
// canonical spelling (preserving a trailing I/II/III team suffix), and strip
// embedded four-digit founding years from names not covered by the variant
// table. Normalize is idempotent. It returns "" when nothing usable remains,
// which callers must treat as an invalid record.
func Normalize(raw string) string {
	name := leadingRowNumber.ReplaceAllString(strings.TrimSpace(raw), "")
	name = collapse(name)
	if name == "" || digitsOnly.MatchString(name) {
		return ""
	}

	base, suffix := splitTeamSuffix(name)
	if canonical, ok := clubVariants[strings.ToLower(base)]; ok {
		return joinTeamSuffix(canonical, suffix)
	}

	base = collapse(foundingYear.ReplaceAllString(base, " "))
	if base == "" || digitsOnly.MatchString(base) {
		return ""
	}
	if canonical, ok := clubVariants[strings.ToLower(base)]; ok {
		return joinTeamSuffix(canonical, suffix)
	}

	return joinTeamSuffix(base, suffix)
}

func collapse(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

func splitTeamSuffix(name string) (string, string) {
	loc := romanSuffix.FindStringSubmatchIndex(name)
	if loc == nil {
		return name, ""
	}

	return name[:loc[0]], name[loc[2]:loc[3]]
}

func joinTeamSuffix(base, suffix string) string {
	if suffix == "" {
		return base
	}

	return base + " " + suffix
}
