package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cec-hub/cec-timetable-api/internal/dto"
	"github.com/cec-hub/cec-timetable-api/internal/models"
	"github.com/cec-hub/cec-timetable-api/internal/timetable"
	appErrors "github.com/cec-hub/cec-timetable-api/pkg/errors"
)

type scheduleStore interface {
	ListByClassTerm(ctx context.Context, classID string, term models.Term, academicYear int) ([]models.ScheduleEntry, error)
	Delete(ctx context.Context, id string) error
	CommitSchedule(ctx context.Context, ref timetable.ScheduleRef, items []timetable.Assignment) (*timetable.CommitResponse, error)
}

// storeDeleter adapts the schedule store to the editor's delete boundary,
// translating the store's gone-already error into the editor's sentinel.
type storeDeleter struct {
	store scheduleStore
}

func (d storeDeleter) DeleteAssignment(ctx context.Context, id string) error {
	err := d.store.Delete(ctx, id)
	if err == nil {
		return nil
	}
	var appErr *appErrors.Error
	if errors.As(err, &appErr) && appErr.Code == appErrors.ErrNotDeletable.Code {
		return timetable.ErrNotDeletable
	}
	return err
}

// EditorSession is one operator's in-progress edit of a class timetable.
// All mutations of a session run under its mutex.
type EditorSession struct {
	ID  string
	Ref timetable.ScheduleRef

	mu         sync.Mutex
	editor     *timetable.Editor
	lastActive time.Time
}

// EditorConfig tunes editing session lifecycle.
type EditorConfig struct {
	SessionTTL     time.Duration
	SweepInterval  time.Duration
	MaxSessions    int
	MaxStagedPairs int
}

// EditorService owns the live timetable editing sessions. Sessions are kept
// in memory: a draft that is never submitted leaves no trace in the store.
type EditorService struct {
	store     scheduleStore
	validator *validator.Validate
	metrics   *MetricsService
	config    EditorConfig
	logger    *zap.Logger

	mu       sync.RWMutex
	sessions map[string]*EditorSession
	stop     chan struct{}
	stopOnce sync.Once
}

// NewEditorService constructs an EditorService and starts its expiry sweep.
func NewEditorService(store scheduleStore, validate *validator.Validate, metrics *MetricsService, config EditorConfig, logger *zap.Logger) *EditorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.SessionTTL <= 0 {
		config.SessionTTL = 2 * time.Hour
	}
	if config.SweepInterval <= 0 {
		config.SweepInterval = 5 * time.Minute
	}
	if config.MaxSessions <= 0 {
		config.MaxSessions = 256
	}
	if config.MaxStagedPairs <= 0 {
		config.MaxStagedPairs = 32
	}
	s := &EditorService{
		store:     store,
		validator: validate,
		metrics:   metrics,
		config:    config,
		logger:    logger,
		sessions:  make(map[string]*EditorSession),
		stop:      make(chan struct{}),
	}
	go s.sweep()
	return s
}

// Close stops the expiry sweep.
func (s *EditorService) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *EditorService) sweep() {
	ticker := time.NewTicker(s.config.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.expireSessions(time.Now())
		}
	}
}

func (s *EditorService) expireSessions(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.sessions {
		sess.mu.Lock()
		idle := now.Sub(sess.lastActive)
		sess.mu.Unlock()
		if idle > s.config.SessionTTL {
			delete(s.sessions, id)
			s.logger.Info("editing session expired", zap.String("session_id", id))
		}
	}
	s.metrics.SetActiveSessions(len(s.sessions))
}

// CreateSession opens a new editing session seeded with the class's
// committed schedule.
func (s *EditorService) CreateSession(ctx context.Context, req dto.CreateSessionRequest) (*EditorSession, []timetable.Assignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session payload")
	}
	ref := timetable.ScheduleRef{ClassID: req.ClassID, Term: req.Term, AcademicYear: req.AcademicYear}

	s.mu.RLock()
	count := len(s.sessions)
	s.mu.RUnlock()
	if count >= s.config.MaxSessions {
		return nil, nil, appErrors.New("TOO_MANY_SESSIONS", 429, "too many open editing sessions")
	}

	entries, err := s.store.ListByClassTerm(ctx, ref.ClassID, models.Term(ref.Term), ref.AcademicYear)
	if err != nil {
		return nil, nil, err
	}

	grid := timetable.NewGrid()
	seed := make([]timetable.Assignment, 0, len(entries))
	for _, e := range entries {
		seed = append(seed, e.Assignment())
	}
	rejected := grid.Seed(seed)
	for _, r := range rejected {
		s.logger.Warn("dropping unplaceable stored assignment",
			zap.String("class_id", ref.ClassID),
			zap.String("slot", r.Slot.String()))
	}

	sess := &EditorSession{
		ID:         uuid.NewString(),
		Ref:        ref,
		editor:     timetable.NewEditor(grid, timetable.NewStagedList(s.config.MaxStagedPairs), storeDeleter{store: s.store}),
		lastActive: time.Now(),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.metrics.SetActiveSessions(len(s.sessions))
	s.mu.Unlock()

	return sess, grid.Assignments(), nil
}

// session fetches a live session and refreshes its activity stamp.
func (s *EditorService) session(id string) (*EditorSession, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrSessionExpired, "editing session not found or expired")
	}
	sess.mu.Lock()
	sess.lastActive = time.Now()
	sess.mu.Unlock()
	return sess, nil
}

// CloseSession discards a session without submitting it.
func (s *EditorService) CloseSession(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.metrics.SetActiveSessions(len(s.sessions))
	s.mu.Unlock()
}

// AddPair stages a subject/teacher pair for placement.
func (s *EditorService) AddPair(sessionID string, req dto.StagePairRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid pair payload")
	}
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	pair := timetable.StagedPair{
		SubjectCode: req.SubjectCode,
		SubjectName: req.SubjectName,
		Credits:     req.Credits,
		TeacherID:   req.TeacherID,
		TeacherName: req.TeacherName,
	}
	if err := sess.editor.Staged().Add(pair); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	return nil
}

// RemovePair drops a staged pair and clears the selection if it pointed at it.
func (s *EditorService) RemovePair(sessionID, subjectCode, teacherID string) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sel, ok := sess.editor.Selection(); ok && sel.SubjectCode == subjectCode && sel.TeacherID == teacherID {
		sess.editor.ClearSelection()
	}
	if !sess.editor.Staged().Remove(subjectCode, teacherID) {
		return appErrors.Clone(appErrors.ErrNotFound, "pair is not staged")
	}
	return nil
}

// SetSelection picks the active pair and delivery mode for subsequent
// clicks. An empty subject and teacher clear the selection.
func (s *EditorService) SetSelection(sessionID string, req dto.SelectionRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid selection payload")
	}
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if req.SubjectCode == "" && req.TeacherID == "" {
		sess.editor.ClearSelection()
		return nil
	}
	if err := sess.editor.Select(req.SubjectCode, req.TeacherID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	if req.DeliveryMode != "" {
		if err := sess.editor.SetDelivery(timetable.DeliveryMode(req.DeliveryMode), req.RoomID); err != nil {
			return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
		}
	}
	return nil
}

// Click applies one grid-cell click and returns its outcome.
func (s *EditorService) Click(sessionID string, req dto.ClickRequest) (timetable.Outcome, error) {
	if err := s.validator.Struct(req); err != nil {
		return timetable.Outcome{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid click payload")
	}
	sess, err := s.session(sessionID)
	if err != nil {
		return timetable.Outcome{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	slot := timetable.SlotKey{Week: req.Week, Day: timetable.Day(req.Day), Period: timetable.Period(req.Period)}
	if !slot.Valid() {
		return timetable.Outcome{}, appErrors.Clone(appErrors.ErrValidation, "invalid slot")
	}
	outcome := sess.editor.Click(slot)
	s.metrics.RecordClickOutcome(string(outcome.Kind))
	return outcome, nil
}

// Preview reports what a click at the cell would run into, without mutating
// the session: the cell's state relative to the selection and the conflicts
// a placement there would raise.
func (s *EditorService) Preview(sessionID string, q dto.PreviewQuery) (timetable.CellState, []timetable.Conflict, error) {
	if err := s.validator.Struct(q); err != nil {
		return "", nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid preview query")
	}
	sess, err := s.session(sessionID)
	if err != nil {
		return "", nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	slot := timetable.SlotKey{Week: q.Week, Day: timetable.Day(q.Day), Period: timetable.Period(q.Period)}
	if !slot.Valid() {
		return "", nil, appErrors.Clone(appErrors.ErrValidation, "invalid slot")
	}
	return sess.editor.CellState(slot), sess.editor.Preview(slot), nil
}

// Confirm resolves the pending prompt.
func (s *EditorService) Confirm(ctx context.Context, sessionID string) (timetable.Outcome, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return timetable.Outcome{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	outcome, err := sess.editor.Confirm(ctx)
	if err != nil {
		return timetable.Outcome{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to apply confirmed action")
	}
	s.metrics.RecordClickOutcome(string(outcome.Kind))
	return outcome, nil
}

// Cancel dismisses the pending prompt.
func (s *EditorService) Cancel(sessionID string) error {
	sess, err := s.session(sessionID)
	if err != nil {
		return err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.editor.Cancel()
	return nil
}

// Validate runs the whole-grid check and returns its findings.
func (s *EditorService) Validate(sessionID string) ([]timetable.Conflict, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return timetable.ValidateBatch(sess.editor.Grid().Assignments()), nil
}

// Snapshot returns the session's current grid and staged pairs.
func (s *EditorService) Snapshot(sessionID string) ([]timetable.Assignment, []timetable.StagedPair, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.editor.Grid().Assignments(), sess.editor.Staged().Pairs(), nil
}

// Submit commits the session's staged assignments to the store. Skipped
// assignments stay staged so the operator can rework and resubmit.
func (s *EditorService) Submit(ctx context.Context, sessionID string) (*timetable.CommitResult, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	result, err := timetable.Commit(ctx, s.store, sess.Ref, sess.editor.Grid())
	if err != nil {
		var invalid *timetable.BatchInvalidError
		if errors.As(err, &invalid) {
			return nil, appErrors.Wrap(err, appErrors.ErrIncompleteBatch.Code, appErrors.ErrIncompleteBatch.Status, "timetable has unresolved conflicts")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to submit timetable")
	}
	return result, nil
}
