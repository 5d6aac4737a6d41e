package ical

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sgwessen/kalender/internal/platform/logging"
	"github.com/sgwessen/kalender/internal/usecase"
)

// Publisher materializes the subscriber-facing calendar file from the
// canonical store.
type Publisher struct {
	schedule *usecase.ScheduleService
	opts     Options
	logger   *logging.Logger

	now func() time.Time
}

func NewPublisher(schedule *usecase.ScheduleService, opts Options, logger *logging.Logger) *Publisher {
	if logger == nil {
		logger = logging.Default()
	}
	return &Publisher{
		schedule: schedule,
		opts:     opts,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

type PublishResult struct {
	Path     string `json:"path"`
	Bytes    int    `json:"bytes"`
	Fixtures int    `json:"fixtures"`
	Events   int    `json:"events"`
}

// Render produces the document without touching the filesystem.
func (p *Publisher) Render(ctx context.Context) ([]byte, error) {
	ctx, span := startSpan(ctx, "ical.Publisher.Render")
	defer span.End()

	snapshot, err := p.schedule.List(ctx)
	if err != nil {
		return nil, err
	}
	return Encode(snapshot.Fixtures, snapshot.Events, p.now(), p.opts), nil
}

// Publish writes the document to path through a same-directory temp file
// and rename, so a webserver serving the file never sees a half-written
// calendar.
func (p *Publisher) Publish(ctx context.Context, path string) (PublishResult, error) {
	ctx, span := startSpan(ctx, "ical.Publisher.Publish")
	defer span.End()

	snapshot, err := p.schedule.List(ctx)
	if err != nil {
		return PublishResult{}, err
	}
	doc := Encode(snapshot.Fixtures, snapshot.Events, p.now(), p.opts)

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return PublishResult{}, fmt.Errorf("create output directory %s: %w", dir, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, doc, 0o644); err != nil {
		return PublishResult{}, fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return PublishResult{}, fmt.Errorf("replace %s: %w", path, err)
	}

	result := PublishResult{
		Path:     path,
		Bytes:    len(doc),
		Fixtures: len(snapshot.Fixtures),
		Events:   len(snapshot.Events),
	}
	p.logger.InfoContext(ctx, "calendar published",
		"path", result.Path, "bytes", result.Bytes,
		"fixtures", result.Fixtures, "events", result.Events)
	return result, nil
}
