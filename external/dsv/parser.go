package dsv

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sgwessen/kalender/internal/domain/candidate"
	"github.com/sgwessen/kalender/internal/domain/competition"
	"github.com/sgwessen/kalender/internal/domain/names"
)

// League page row layout. The portal renders one schedule table per league
// with spacer cells between the interesting columns:
//
//	0 game number, 1 date + time, 3 home, 5 guest, 6 venue, 7 result
//
// The result cell links to the per-game detail page once a game exists.
const (
	cellGameNo   = 0
	cellDateTime = 1
	cellHome     = 3
	cellGuest    = 5
	cellVenue    = 6
	cellResult   = 7
	minRowCells  = 8
)

var (
	gameNumberPattern = regexp.MustCompile(`^\d+$`)
	datePattern       = regexp.MustCompile(`\d{1,2}\.\d{1,2}\.\d{2,4}`)
	timePattern       = regexp.MustCompile(`\d{1,2}:\d{2}`)
	emptyResult       = regexp.MustCompile(`^[-:\s]*$`)
)

// parseLeaguePage walks every table row of a league page and keeps the rows
// that belong to the configured club. Rows are matched on the normalized
// participant names so upstream spelling drift does not lose games.
func parseLeaguePage(doc *goquery.Document, comp competition.Competition, clubName string, resolveHref func(string) string) []candidate.Record {
	records := make([]candidate.Record, 0, 16)

	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td, th")
		if cells.Length() < minRowCells {
			return
		}
		if !gameNumberPattern.MatchString(cellText(cells.Eq(cellGameNo))) {
			return
		}

		home := cellText(cells.Eq(cellHome))
		guest := cellText(cells.Eq(cellGuest))
		if !mentionsClub(home, guest, clubName) {
			return
		}

		dateCell := cellText(cells.Eq(cellDateTime))
		rawDate := datePattern.FindString(dateCell)
		rawTime := timePattern.FindString(dateCell)

		result, detailURL := parseResultCell(cells.Eq(cellResult), resolveHref)

		records = append(records, candidate.Record{
			Kind:        candidate.KindFixture,
			Home:        home,
			Guest:       guest,
			RawDate:     rawDate,
			RawTime:     rawTime,
			Location:    cellText(cells.Eq(cellVenue)),
			Result:      result,
			Competition: comp.Tag,
			DetailURL:   detailURL,
		})
	})

	return records
}

func mentionsClub(home, guest, clubName string) bool {
	return strings.Contains(names.Normalize(home), clubName) ||
		strings.Contains(names.Normalize(guest), clubName)
}

// parseResultCell extracts the played result and, when the cell links to the
// game detail page, the absolute detail URL. Placeholder results like "-:-"
// count as not played.
func parseResultCell(cell *goquery.Selection, resolveHref func(string) string) (string, string) {
	result := ""
	detailURL := ""

	link := cell.Find("a").First()
	if link.Length() > 0 {
		result = collapseText(link.Text())
		if href, ok := link.Attr("href"); ok && resolveHref != nil {
			detailURL = resolveHref(href)
		}
	} else {
		result = cellText(cell)
	}

	if emptyResult.MatchString(result) {
		result = ""
	}
	return result, detailURL
}

// Detail pages are label/value tables. Labels vary by page generation, so
// matching is prefix-based on the lowercased label with the trailing colon
// stripped.
func parseDetailPage(doc *goquery.Document) candidate.Detail {
	var detail candidate.Detail
	referees := make([]string, 0, 2)

	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td, th")
		if cells.Length() < 2 {
			return
		}

		label := strings.ToLower(strings.TrimSuffix(cellText(cells.Eq(0)), ":"))
		value := cellText(cells.Eq(1))
		if value == "" {
			return
		}

		switch {
		case strings.HasPrefix(label, "schiedsrichter"):
			referees = append(referees, value)
		case label == "ergebnis":
			if !emptyResult.MatchString(value) {
				detail.Result = value
			}
		case label == "anschrift" || label == "adresse":
			detail.VenueAddress = value
		}
	})

	doc.Find("a[href]").EachWithBreak(func(_ int, link *goquery.Selection) bool {
		href, _ := link.Attr("href")
		if isMapURL(href) {
			detail.VenueMapURL = strings.TrimSpace(href)
			return false
		}
		return true
	})

	detail.Referees = strings.Join(referees, ", ")
	return detail
}

func isMapURL(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.Contains(href, "maps.google.") ||
		strings.Contains(href, "google.com/maps") ||
		strings.Contains(href, "goo.gl/maps")
}

func cellText(cell *goquery.Selection) string {
	return collapseText(cell.Text())
}

func collapseText(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}
