package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cec-hub/cec-timetable-api/internal/models"
	appErrors "github.com/cec-hub/cec-timetable-api/pkg/errors"
	"github.com/cec-hub/cec-timetable-api/pkg/jobs"
	"github.com/cec-hub/cec-timetable-api/pkg/storage"
)

// ExportJobStatus tracks the lifecycle of a queued export.
type ExportJobStatus string

const (
	ExportJobPending ExportJobStatus = "PENDING"
	ExportJobDone    ExportJobStatus = "DONE"
	ExportJobFailed  ExportJobStatus = "FAILED"
)

// ExportJob is a queued timetable render.
type ExportJob struct {
	ID          string          `json:"id"`
	Status      ExportJobStatus `json:"status"`
	ClassID     string          `json:"class_id"`
	ClassCode   string          `json:"class_code"`
	Term        models.Term     `json:"term"`
	Year        int             `json:"academic_year"`
	FromWeek    int             `json:"from_week,omitempty"`
	ToWeek      int             `json:"to_week,omitempty"`
	File        string          `json:"-"`
	DownloadURL string          `json:"download_url,omitempty"`
	Error       string          `json:"error,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	FinishedAt  *time.Time      `json:"finished_at,omitempty"`
}

// exportTask is the queue payload: everything a worker needs to render one
// timetable document.
type exportTask struct {
	JobID     string
	ClassID   string
	ClassCode string
	Term      models.Term
	Year      int
	FromWeek  int
	ToWeek    int
}

// ExportJobConfig tunes the export worker pool and file retention.
type ExportJobConfig struct {
	Workers       int
	FileTTL       time.Duration
	SweepInterval time.Duration
}

// ExportJobService renders timetable PDFs in the background and hands out
// signed download links. Large week ranges are slow to render, so the
// synchronous endpoint stays for small requests and this queue covers the
// rest. Rendered files are swept from disk once their TTL passes.
type ExportJobService struct {
	exporter      *ExportService
	store         *storage.ExportStore
	signer        *storage.DownloadSigner
	queue         *jobs.Queue[exportTask]
	fileTTL       time.Duration
	sweepInterval time.Duration
	logger        *zap.Logger

	mu   sync.RWMutex
	jobs map[string]*ExportJob

	stop     chan struct{}
	stopOnce sync.Once
}

// NewExportJobService constructs the service and starts its workers and the
// retention sweeper.
func NewExportJobService(ctx context.Context, exporter *ExportService, store *storage.ExportStore, signer *storage.DownloadSigner, cfg ExportJobConfig, logger *zap.Logger) *ExportJobService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.FileTTL <= 0 {
		cfg.FileTTL = 72 * time.Hour
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Hour
	}
	s := &ExportJobService{
		exporter:      exporter,
		store:         store,
		signer:        signer,
		fileTTL:       cfg.FileTTL,
		sweepInterval: cfg.SweepInterval,
		logger:        logger,
		jobs:          make(map[string]*ExportJob),
		stop:          make(chan struct{}),
	}
	s.queue = jobs.New("timetable-export", s.process, jobs.Config{
		Workers: cfg.Workers,
		Logger:  logger,
	})
	s.queue.Start(ctx)
	go s.sweepFiles()
	return s
}

// Stop drains the worker pool and stops the sweeper.
func (s *ExportJobService) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
	s.queue.Stop()
}

func (s *ExportJobService) sweepFiles() {
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.CleanupExpired()
		}
	}
}

// Enqueue schedules a render and returns the job descriptor.
func (s *ExportJobService) Enqueue(classID, classCode string, term models.Term, year, fromWeek, toWeek int) (*ExportJob, error) {
	job := &ExportJob{
		ID:        uuid.NewString(),
		Status:    ExportJobPending,
		ClassID:   classID,
		ClassCode: classCode,
		Term:      term,
		Year:      year,
		FromWeek:  fromWeek,
		ToWeek:    toWeek,
		CreatedAt: time.Now().UTC(),
	}
	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()

	task := exportTask{
		JobID:     job.ID,
		ClassID:   classID,
		ClassCode: classCode,
		Term:      term,
		Year:      year,
		FromWeek:  fromWeek,
		ToWeek:    toWeek,
	}
	if err := s.queue.Enqueue(jobs.Task[exportTask]{ID: job.ID, Payload: task}); err != nil {
		s.mu.Lock()
		delete(s.jobs, job.ID)
		s.mu.Unlock()
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to queue export")
	}
	return job, nil
}

// Get returns a job descriptor by id.
func (s *ExportJobService) Get(id string) (*ExportJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export job not found")
	}
	copied := *job
	return &copied, nil
}

// OpenDownload validates a signed token and loads the rendered file.
func (s *ExportJobService) OpenDownload(token string) (string, []byte, error) {
	claim, err := s.signer.Verify(token)
	if err != nil {
		return "", nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid download token")
	}
	s.mu.RLock()
	job, ok := s.jobs[claim.JobID]
	s.mu.RUnlock()
	if !ok || job.Status != ExportJobDone {
		return "", nil, appErrors.Clone(appErrors.ErrNotFound, "export not available")
	}
	payload, err := s.store.ReadFile(claim.File)
	if err != nil {
		return "", nil, appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "export file missing")
	}
	return claim.File, payload, nil
}

// CleanupExpired deletes rendered files past their TTL.
func (s *ExportJobService) CleanupExpired() {
	removed, err := s.store.Sweep(s.fileTTL)
	if err != nil {
		s.logger.Warn("export cleanup failed", zap.Error(err))
		return
	}
	if len(removed) > 0 {
		s.logger.Info("export files cleaned", zap.Int("count", len(removed)))
	}
}

func (s *ExportJobService) process(ctx context.Context, t jobs.Task[exportTask]) error {
	task := t.Payload
	payload, err := s.exporter.RenderPDF(ctx, task.ClassCode, task.ClassID, task.Term, task.Year, task.FromWeek, task.ToWeek)
	if err != nil {
		s.finishJob(task.JobID, func(job *ExportJob) {
			job.Status = ExportJobFailed
			job.Error = err.Error()
		})
		return err
	}

	name := fmt.Sprintf("%s/%s_%s_%d_%s.pdf", time.Now().UTC().Format("2006-01"), task.ClassCode, task.Term, task.Year, task.JobID)
	if _, err := s.store.Save(name, payload); err != nil {
		s.finishJob(task.JobID, func(job *ExportJob) {
			job.Status = ExportJobFailed
			job.Error = err.Error()
		})
		return err
	}

	token, _, err := s.signer.Sign(task.JobID, name)
	if err != nil {
		s.finishJob(task.JobID, func(job *ExportJob) {
			job.Status = ExportJobFailed
			job.Error = err.Error()
		})
		return err
	}

	s.finishJob(task.JobID, func(job *ExportJob) {
		job.Status = ExportJobDone
		job.File = name
		job.DownloadURL = "/schedules/export/download?token=" + token
	})
	return nil
}

func (s *ExportJobService) finishJob(id string, update func(*ExportJob)) {
	now := time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return
	}
	update(job)
	job.FinishedAt = &now
}
