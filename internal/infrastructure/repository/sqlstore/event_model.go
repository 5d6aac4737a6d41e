package sqlstore

import (
	"time"

	"github.com/sgwessen/kalender/internal/domain/event"
)

type eventTableModel struct {
	Identity     string    `db:"identity"`
	DisplayNo    int       `db:"display_no"`
	Title        string    `db:"title"`
	EventDate    string    `db:"event_date"`
	EventTime    string    `db:"event_time"`
	Location     string    `db:"location"`
	Description  string    `db:"description"`
	LastModified time.Time `db:"last_modified"`
	CreatedAt    time.Time `db:"created_at"`
}

func newEventTableModel(item event.Event, displayNo int) eventTableModel {
	return eventTableModel{
		Identity:     item.Identity,
		DisplayNo:    displayNo,
		Title:        item.Title,
		EventDate:    item.Date,
		EventTime:    item.Time,
		Location:     item.Location,
		Description:  item.Description,
		LastModified: item.LastModified.UTC(),
		CreatedAt:    item.CreatedAt.UTC(),
	}
}

func (m eventTableModel) toDomain() event.Event {
	return event.Event{
		Identity:     m.Identity,
		DisplayNo:    m.DisplayNo,
		Title:        m.Title,
		Date:         m.EventDate,
		Time:         m.EventTime,
		Location:     m.Location,
		Description:  m.Description,
		LastModified: m.LastModified.UTC(),
		CreatedAt:    m.CreatedAt.UTC(),
	}
}
