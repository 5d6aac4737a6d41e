package clubfile

import (
	"context"
	"fmt"
	"os"

	sonic "github.com/bytedance/sonic"
	"github.com/sgwessen/kalender/internal/domain/candidate"
	"github.com/sgwessen/kalender/internal/domain/competition"
	"github.com/sgwessen/kalender/internal/platform/logging"
)

// Source serves club events (tournaments, training camps, meetings) from a
// local JSON file maintained by hand. The file is a flat array:
//
//	[{"title": "Vereinsmeisterschaft", "date": "14.06.25", "time": "10:00",
//	  "location": "Grugabad Essen", "description": "Alle Mannschaften"}]
//
// A missing file means the club has nothing planned and is not an error.
type Source struct {
	path   string
	logger *logging.Logger
}

type fileEvent struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

func NewSource(path string, logger *logging.Logger) *Source {
	if logger == nil {
		logger = logging.Default()
	}
	return &Source{path: path, logger: logger}
}

func (s *Source) Fetch(ctx context.Context, _ competition.Competition) ([]candidate.Record, error) {
	if s.path == "" {
		return nil, nil
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.DebugContext(ctx, "club events file absent", "path", s.path)
			return nil, nil
		}
		return nil, fmt.Errorf("read club events file %s: %w", s.path, err)
	}

	var items []fileEvent
	if err := sonic.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode club events file %s: %w", s.path, err)
	}

	records := make([]candidate.Record, 0, len(items))
	for _, item := range items {
		records = append(records, candidate.Record{
			Kind:        candidate.KindEvent,
			Title:       item.Title,
			RawDate:     item.Date,
			RawTime:     item.Time,
			Location:    item.Location,
			Description: item.Description,
		})
	}

	s.logger.DebugContext(ctx, "club events file read", "path", s.path, "candidates", len(records))
	return records, nil
}
