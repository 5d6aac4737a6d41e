package ical

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sgwessen/kalender/internal/infrastructure/repository/memory"
	"github.com/sgwessen/kalender/internal/usecase"
)

func TestPublisher_Publish(t *testing.T) {
	t.Parallel()

	schedule := usecase.NewScheduleService(memory.NewFixtureRepository(), memory.NewEventRepository(), nil)
	if _, err := schedule.AddFixture(context.Background(), usecase.AddFixtureInput{
		Competition: "Oberliga NRW",
		Home:        "SG Wasserball Essen",
		Guest:       "ASC Duisburg 98",
		Date:        "05.10.2025",
		Time:        "18:30",
	}); err != nil {
		t.Fatalf("AddFixture error: %v", err)
	}

	pub := NewPublisher(schedule, Options{}, nil)
	pub.now = func() time.Time { return time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC) }

	path := filepath.Join(t.TempDir(), "out", "kalender.ics")
	result, err := pub.Publish(context.Background(), path)
	if err != nil {
		t.Fatalf("Publish error: %v", err)
	}
	if result.Fixtures != 1 || result.Events != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}

	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read published file: %v", err)
	}
	if len(written) != result.Bytes {
		t.Fatalf("result reports %d bytes, file has %d", result.Bytes, len(written))
	}

	rendered, err := pub.Render(context.Background())
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if !bytes.Equal(written, rendered) {
		t.Fatalf("published file must match rendered document")
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file must be renamed away, stat err=%v", err)
	}
}
