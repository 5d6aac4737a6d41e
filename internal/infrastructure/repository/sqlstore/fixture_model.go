package sqlstore

import (
	"time"

	"github.com/sgwessen/kalender/internal/domain/fixture"
)

type fixtureTableModel struct {
	Identity     string    `db:"identity"`
	DisplayNo    int       `db:"display_no"`
	Competition  string    `db:"competition"`
	HomeTeam     string    `db:"home_team"`
	GuestTeam    string    `db:"guest_team"`
	MatchDate    string    `db:"match_date"`
	MatchTime    string    `db:"match_time"`
	Location     string    `db:"location"`
	Result       string    `db:"result"`
	Referees     string    `db:"referees"`
	VenueAddress string    `db:"venue_address"`
	VenueMapURL  string    `db:"venue_map_url"`
	DetailURL    string    `db:"detail_url"`
	LastModified time.Time `db:"last_modified"`
	CreatedAt    time.Time `db:"created_at"`
}

func newFixtureTableModel(item fixture.Fixture, displayNo int) fixtureTableModel {
	return fixtureTableModel{
		Identity:     item.Identity,
		DisplayNo:    displayNo,
		Competition:  item.Competition,
		HomeTeam:     item.Home,
		GuestTeam:    item.Guest,
		MatchDate:    item.Date,
		MatchTime:    item.Time,
		Location:     item.Location,
		Result:       item.Result,
		Referees:     item.Referees,
		VenueAddress: item.VenueAddress,
		VenueMapURL:  item.VenueMapURL,
		DetailURL:    item.DetailURL,
		LastModified: item.LastModified.UTC(),
		CreatedAt:    item.CreatedAt.UTC(),
	}
}

func (m fixtureTableModel) toDomain() fixture.Fixture {
	return fixture.Fixture{
		Identity:     m.Identity,
		DisplayNo:    m.DisplayNo,
		Competition:  m.Competition,
		Home:         m.HomeTeam,
		Guest:        m.GuestTeam,
		Date:         m.MatchDate,
		Time:         m.MatchTime,
		Location:     m.Location,
		Result:       m.Result,
		Referees:     m.Referees,
		VenueAddress: m.VenueAddress,
		VenueMapURL:  m.VenueMapURL,
		DetailURL:    m.DetailURL,
		LastModified: m.LastModified.UTC(),
		CreatedAt:    m.CreatedAt.UTC(),
	}
}
