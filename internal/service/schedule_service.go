package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/cec-hub/cec-timetable-api/internal/dto"
	"github.com/cec-hub/cec-timetable-api/internal/models"
	"github.com/cec-hub/cec-timetable-api/internal/timetable"
	appErrors "github.com/cec-hub/cec-timetable-api/pkg/errors"
)

type scheduleRepository interface {
	ListByClassTerm(ctx context.Context, classID string, term models.Term, academicYear int) ([]models.ScheduleEntry, error)
	FindByID(ctx context.Context, id string) (*models.ScheduleEntry, error)
	FindAtSlot(ctx context.Context, term models.Term, academicYear int, slot timetable.SlotKey) ([]models.ScheduleEntry, error)
	Insert(ctx context.Context, entry *models.ScheduleEntry) (string, error)
	Delete(ctx context.Context, id string) error
}

// scheduleTarget mirrors timetable.ScheduleRef with validation tags; refs
// arriving over any path are checked through it.
type scheduleTarget struct {
	ClassID      string `validate:"required"`
	Term         string `validate:"required,oneof=HK1 HK2 HK3"`
	AcademicYear int    `validate:"required,min=2000,max=2100"`
}

// ScheduleService is the authoritative store for committed timetables. It
// owns the conflict checks the editor cannot perform locally: bookings of
// the same teacher or room by other classes.
type ScheduleService struct {
	repo      scheduleRepository
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewScheduleService constructs a ScheduleService.
func NewScheduleService(repo scheduleRepository, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{repo: repo, validator: validate, metrics: metrics, logger: logger}
}

func (s *ScheduleService) validateRef(ref timetable.ScheduleRef) error {
	if err := s.validator.Struct(scheduleTarget(ref)); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule target")
	}
	return nil
}

// ListByClassTerm returns the committed entries of one class for a term.
func (s *ScheduleService) ListByClassTerm(ctx context.Context, classID string, term models.Term, academicYear int) ([]models.ScheduleEntry, error) {
	if err := s.validateRef(timetable.ScheduleRef{ClassID: classID, Term: string(term), AcademicYear: academicYear}); err != nil {
		return nil, err
	}
	entries, err := s.repo.ListByClassTerm(ctx, classID, term, academicYear)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}
	return entries, nil
}

// Get loads one committed entry by identifier.
func (s *ScheduleService) Get(ctx context.Context, id string) (*models.ScheduleEntry, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "schedule entry not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule entry")
	}
	return entry, nil
}

// Delete removes one committed entry. A missing entry yields ErrNotDeletable
// so the caller can treat the deletion as already done.
func (s *ScheduleService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotDeletable, "")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete schedule entry")
	}
	return nil
}

// CommitBatch validates and stores a direct batch commit payload.
func (s *ScheduleService) CommitBatch(ctx context.Context, req dto.CommitRequest) (*timetable.CommitResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid commit payload")
	}

	items := make([]timetable.Assignment, 0, len(req.Items))
	for _, item := range req.Items {
		a := timetable.Assignment{
			Slot:         timetable.SlotKey{Week: item.Week, Day: timetable.Day(item.Day), Period: timetable.Period(item.Period)},
			SubjectCode:  item.SubjectCode,
			TeacherID:    item.TeacherID,
			DeliveryMode: timetable.DeliveryMode(item.DeliveryMode),
			RoomID:       item.RoomID,
		}
		if !a.Slot.Valid() {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("%v does not address a grid cell", a.Slot))
		}
		items = append(items, a)
	}

	ref := timetable.ScheduleRef{ClassID: req.ClassID, Term: req.Term, AcademicYear: req.AcademicYear}
	return s.CommitSchedule(ctx, ref, items)
}

// CommitSchedule stores a batch of assignments for a class. Items are
// processed independently: an item whose slot is already taken by the class,
// or whose teacher or room is booked by another class at the same slot, is
// skipped rather than failing the whole batch.
func (s *ScheduleService) CommitSchedule(ctx context.Context, ref timetable.ScheduleRef, items []timetable.Assignment) (*timetable.CommitResponse, error) {
	if err := s.validateRef(ref); err != nil {
		return nil, err
	}
	term := models.Term(ref.Term)

	resp := &timetable.CommitResponse{}
	for _, item := range items {
		if err := item.CheckDelivery(); err != nil {
			resp.Skipped = append(resp.Skipped, item.Slot)
			continue
		}

		occupants, err := s.repo.FindAtSlot(ctx, term, ref.AcademicYear, item.Slot)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check slot occupancy")
		}
		if reason := s.conflictAt(ref.ClassID, item, occupants); reason != "" {
			s.logger.Info("skipping assignment",
				zap.String("class_id", ref.ClassID),
				zap.String("slot", item.Slot.String()),
				zap.String("reason", reason))
			resp.Skipped = append(resp.Skipped, item.Slot)
			continue
		}

		id, err := s.repo.Insert(ctx, &models.ScheduleEntry{
			ClassID:      ref.ClassID,
			Term:         term,
			AcademicYear: ref.AcademicYear,
			Week:         item.Slot.Week,
			Day:          item.Slot.Day,
			Period:       item.Slot.Period,
			SubjectCode:  item.SubjectCode,
			TeacherID:    item.TeacherID,
			DeliveryMode: item.DeliveryMode,
			RoomID:       item.RoomID,
		})
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store assignment")
		}
		resp.Added = append(resp.Added, timetable.AddedSlot{ID: id, Slot: item.Slot})
	}

	resp.Message = fmt.Sprintf("added %d assignments, skipped %d", len(resp.Added), len(resp.Skipped))
	s.metrics.RecordCommit(len(resp.Added), len(resp.Skipped))
	return resp, nil
}

// conflictAt reports why item cannot be stored given the slot's current
// occupants, or empty when it can.
func (s *ScheduleService) conflictAt(classID string, item timetable.Assignment, occupants []models.ScheduleEntry) string {
	for _, o := range occupants {
		if o.ClassID == classID {
			return "slot already taken by this class"
		}
		if o.TeacherID == item.TeacherID {
			return "teacher booked by another class"
		}
		if item.DeliveryMode == timetable.InPerson && o.DeliveryMode == timetable.InPerson &&
			item.RoomID != nil && o.RoomID != nil && *item.RoomID == *o.RoomID {
			return "room booked by another class"
		}
	}
	return ""
}
