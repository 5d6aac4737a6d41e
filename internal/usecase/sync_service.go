package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sgwessen/kalender/internal/domain/candidate"
	"github.com/sgwessen/kalender/internal/domain/competition"
	"github.com/sgwessen/kalender/internal/platform/logging"
)

// CandidateSource produces the raw candidate batch for one competition.
// Implementations own transport, parsing and retries. A source error fails
// that competition's batch, not the whole pass.
type CandidateSource interface {
	Fetch(ctx context.Context, comp competition.Competition) ([]candidate.Record, error)
}

type SyncInput struct {
	MaxWorkers int
}

type SyncResult struct {
	CompetitionCount int                 `json:"competition_count"`
	CandidateCount   int                 `json:"candidate_count"`
	WorkerCount      int                 `json:"worker_count"`
	SuccessCount     int                 `json:"success_count"`
	FailedCount      int                 `json:"failed_count"`
	SkippedCount     int                 `json:"skipped_count"`
	Fetches          []SourceFetchResult `json:"fetches"`
	Report           Report              `json:"report"`
}

type SourceFetchResult struct {
	CompetitionID string `json:"competition_id"`
	Tag           string `json:"tag"`
	Source        string `json:"source"`
	Status        string `json:"status"`
	Candidates    int    `json:"candidates"`
	DurationMs    int64  `json:"duration_ms"`
	Message       string `json:"message,omitempty"`
}

const (
	syncStatusSuccess = "success"
	syncStatusFailed  = "failed"
	syncStatusSkipped = "skipped"

	// maxFetchWorkers caps concurrent requests against the DSV portal.
	maxFetchWorkers = 4
)

// SyncService runs one full pass: fetch every configured competition, then
// reconcile the batches in configuration order. Fetching fans out across a
// worker pool; reconciliation stays serial so display ordinals and report
// ordering come out deterministic.
type SyncService struct {
	competitions []competition.Competition
	sources      map[string]CandidateSource
	reconciler   *ReconcileService
	logger       *logging.Logger

	now func() time.Time
}

func NewSyncService(
	competitions []competition.Competition,
	sources map[string]CandidateSource,
	reconciler *ReconcileService,
	logger *logging.Logger,
) *SyncService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SyncService{
		competitions: competitions,
		sources:      sources,
		reconciler:   reconciler,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (s *SyncService) Run(ctx context.Context, input SyncInput) (SyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SyncService.Run")
	defer span.End()

	if s.reconciler == nil {
		return SyncResult{}, fmt.Errorf("%w: sync service has no reconciler", ErrDependencyUnavailable)
	}
	for _, comp := range s.competitions {
		if s.sources[comp.Source] == nil {
			return SyncResult{}, fmt.Errorf("%w: no candidate source registered for source=%s (competition=%s)",
				ErrDependencyUnavailable, comp.Source, comp.ID)
		}
	}

	workerCount := normalizeFetchWorkerCount(input.MaxWorkers, len(s.competitions))
	result := SyncResult{
		CompetitionCount: len(s.competitions),
		WorkerCount:      workerCount,
		Fetches:          make([]SourceFetchResult, len(s.competitions)),
		Report:           newReport(),
	}
	if len(s.competitions) == 0 {
		return result, nil
	}

	batches := make([][]candidate.Record, len(s.competitions))

	var successCount atomic.Int32
	var failedCount atomic.Int32
	var skippedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return SyncResult{}, fmt.Errorf("create fetch pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i, comp := range s.competitions {
		i, comp := i, comp
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := SourceFetchResult{
				CompetitionID: comp.ID,
				Tag:           comp.Tag,
				Source:        comp.Source,
			}

			records, err := s.sources[comp.Source].Fetch(ctx, comp)
			row.DurationMs = time.Since(start).Milliseconds()
			switch {
			case err != nil:
				row.Status = syncStatusFailed
				row.Message = err.Error()
				failedCount.Add(1)
				s.logger.WarnContext(ctx, "candidate fetch failed",
					"competition", comp.ID, "source", comp.Source, "error", err)
			case len(records) == 0:
				row.Status = syncStatusSkipped
				row.Message = "source yielded no candidates"
				skippedCount.Add(1)
			default:
				row.Status = syncStatusSuccess
				row.Candidates = len(records)
				batches[i] = records
				successCount.Add(1)
			}

			result.Fetches[i] = row
		}); err != nil {
			workers.Done()
			return SyncResult{}, fmt.Errorf("submit fetch to worker pool: %w", err)
		}
	}

	workers.Wait()

	for _, row := range result.Fetches {
		result.CandidateCount += row.Candidates
	}

	now := s.now()
	for i, batch := range batches {
		if len(batch) == 0 {
			continue
		}
		sub, err := s.reconciler.Reconcile(ctx, batch, now)
		if err != nil {
			return SyncResult{}, fmt.Errorf("reconcile competition=%s: %w", s.competitions[i].ID, err)
		}
		result.Report.merge(sub)
	}

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())
	result.SkippedCount = int(skippedCount.Load())

	s.logger.InfoContext(ctx, "sync pass finished",
		"competitions", result.CompetitionCount,
		"candidates", result.CandidateCount,
		"new", len(result.Report.New),
		"updated", len(result.Report.Updated),
		"unchanged", len(result.Report.Unchanged),
		"dropped", result.Report.Dropped,
		"failed_sources", result.FailedCount)
	return result, nil
}

func normalizeFetchWorkerCount(value int, taskCount int) int {
	if taskCount <= 0 {
		return 1
	}
	if value <= 0 {
		value = 1
	}
	if value > maxFetchWorkers {
		value = maxFetchWorkers
	}
	if value > taskCount {
		value = taskCount
	}
	return value
}
