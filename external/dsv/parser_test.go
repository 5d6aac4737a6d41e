package dsv

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/sgwessen/kalender/internal/domain/candidate"
	"github.com/sgwessen/kalender/internal/domain/competition"
)

const leagueHTML = `<html><body>
<h1>Oberliga NRW</h1>
<table class="sportView">
  <tr><th>Nr.</th><th>Datum</th><th></th><th>Heim</th><th></th><th>Gast</th><th>Ort</th><th>Ergebnis</th><th>Viertel</th></tr>
  <tr>
    <td>87</td><td>05.10.24, 18:30 Uhr</td><td></td>
    <td>SV L&#252;nen 08 II</td><td>-</td><td>SGW Essen II</td>
    <td>L&#252;nen</td><td><a href="Game.aspx?GameID=87&amp;Season=2024">10:7</a></td><td>(2:1,3:2,2:2,3:2)</td>
  </tr>
  <tr>
    <td>92</td><td>12.10.24, 16:00 Uhr</td><td></td>
    <td>SG Wasserball Essen</td><td>-</td><td>ASC Duisburg</td>
    <td>Essen</td><td>-:-</td><td></td>
  </tr>
  <tr>
    <td>95</td><td></td><td></td>
    <td>SV Bochum</td><td>-</td><td>Duisburger SV</td>
    <td>Bochum</td><td>-:-</td><td></td>
  </tr>
</table>
</body></html>`

func TestParseLeaguePage_KeepsOnlyClubRows(t *testing.T) {
	t.Parallel()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(leagueHTML))
	if err != nil {
		t.Fatalf("parse fixture html: %v", err)
	}

	comp := competition.Competition{ID: "oberliga-nrw", Tag: "Oberliga NRW"}
	resolve := func(href string) string { return "https://dsvdaten.dsv.de/Modules/WB/" + href }

	records := parseLeaguePage(doc, comp, "SG Wasserball Essen", resolve)
	if len(records) != 2 {
		t.Fatalf("expected 2 club rows, got=%d: %+v", len(records), records)
	}

	first := records[0]
	if first.Kind != candidate.KindFixture {
		t.Fatalf("unexpected kind %q", first.Kind)
	}
	if first.Home != "SV Lünen 08 II" || first.Guest != "SGW Essen II" {
		t.Fatalf("participants not verbatim: home=%q guest=%q", first.Home, first.Guest)
	}
	if first.RawDate != "05.10.24" || first.RawTime != "18:30" {
		t.Fatalf("date cell not split: date=%q time=%q", first.RawDate, first.RawTime)
	}
	if first.Location != "Lünen" {
		t.Fatalf("unexpected location %q", first.Location)
	}
	if first.Result != "10:7" {
		t.Fatalf("unexpected result %q", first.Result)
	}
	if first.DetailURL != "https://dsvdaten.dsv.de/Modules/WB/Game.aspx?GameID=87&Season=2024" {
		t.Fatalf("detail url not resolved: %q", first.DetailURL)
	}
	if first.Competition != "Oberliga NRW" {
		t.Fatalf("unexpected competition tag %q", first.Competition)
	}

	second := records[1]
	if second.Home != "SG Wasserball Essen" || second.Guest != "ASC Duisburg" {
		t.Fatalf("unexpected second row: home=%q guest=%q", second.Home, second.Guest)
	}
	if second.Result != "" {
		t.Fatalf("placeholder result must be dropped, got=%q", second.Result)
	}
	if second.DetailURL != "" {
		t.Fatalf("row without link must have no detail url, got=%q", second.DetailURL)
	}
}

func TestParseLeaguePage_SkipsHeaderAndShortRows(t *testing.T) {
	t.Parallel()

	html := `<table>
	  <tr><th>Nr.</th><th>Datum</th><th></th><th>Heim</th><th></th><th>Gast</th><th>Ort</th><th>Ergebnis</th></tr>
	  <tr><td>kein spieltag</td><td></td><td></td><td>SGW Essen</td><td></td><td>X</td><td></td><td></td></tr>
	  <tr><td>12</td><td>01.11.24</td><td>SGW Essen</td><td>ASC Duisburg</td></tr>
	</table>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse fixture html: %v", err)
	}

	records := parseLeaguePage(doc, competition.Competition{Tag: "T"}, "SG Wasserball Essen", nil)
	if len(records) != 0 {
		t.Fatalf("expected no records, got=%d", len(records))
	}
}

func TestParseDetailPage(t *testing.T) {
	t.Parallel()

	html := `<html><body>
	<table>
	  <tr><td>Ergebnis:</td><td>10:7 (2:1, 3:2, 2:2, 3:2)</td></tr>
	  <tr><td>Schiedsrichter 1:</td><td>Max Mustermann</td></tr>
	  <tr><td>Schiedsrichter 2:</td><td>Erika Beispiel</td></tr>
	  <tr><td>Anschrift:</td><td>Hallenbad L&#252;nen, Badstr. 1, 44532 L&#252;nen</td></tr>
	  <tr><td>Zuschauer:</td><td></td></tr>
	</table>
	<p><a href="https://maps.google.de/?q=Badstr.+1+44532">Karte</a></p>
	</body></html>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse fixture html: %v", err)
	}

	detail := parseDetailPage(doc)
	if detail.Result != "10:7 (2:1, 3:2, 2:2, 3:2)" {
		t.Fatalf("unexpected result %q", detail.Result)
	}
	if detail.Referees != "Max Mustermann, Erika Beispiel" {
		t.Fatalf("unexpected referees %q", detail.Referees)
	}
	if detail.VenueAddress != "Hallenbad Lünen, Badstr. 1, 44532 Lünen" {
		t.Fatalf("unexpected venue address %q", detail.VenueAddress)
	}
	if detail.VenueMapURL != "https://maps.google.de/?q=Badstr.+1+44532" {
		t.Fatalf("unexpected map url %q", detail.VenueMapURL)
	}
}

func TestParseDetailPage_EmptyPage(t *testing.T) {
	t.Parallel()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<html><body><p>Kein Spiel</p></body></html>`))
	if err != nil {
		t.Fatalf("parse fixture html: %v", err)
	}

	if detail := parseDetailPage(doc); !detail.Empty() {
		t.Fatalf("expected empty detail, got=%+v", detail)
	}
}
