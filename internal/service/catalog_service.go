package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/cec-hub/cec-timetable-api/internal/dto"
	"github.com/cec-hub/cec-timetable-api/internal/models"
	appErrors "github.com/cec-hub/cec-timetable-api/pkg/errors"
)

type classRepository interface {
	List(ctx context.Context, filter models.ClassFilter) ([]models.Class, int, error)
	FindByID(ctx context.Context, id string) (*models.Class, error)
}

type teacherRepository interface {
	List(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, int, error)
}

type roomRepository interface {
	ListFacilities(ctx context.Context) ([]models.Facility, error)
	ListByFacility(ctx context.Context, facilityID string) ([]models.Room, error)
}

type courseRepository interface {
	ListByProgram(ctx context.Context, intakeYear int, majorID string) ([]models.Course, error)
}

// CatalogService serves the reference data the timetable editor picks from:
// classes, teachers, rooms and program courses. Reads go through the cache.
type CatalogService struct {
	classes   classRepository
	teachers  teacherRepository
	rooms     roomRepository
	courses   courseRepository
	validator *validator.Validate
	cache     *CacheService
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(classes classRepository, teachers teacherRepository, rooms roomRepository, courses courseRepository, validate *validator.Validate, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *CatalogService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{
		classes:   classes,
		teachers:  teachers,
		rooms:     rooms,
		courses:   courses,
		validator: validate,
		cache:     cache,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// ListClasses returns classes with pagination metadata.
func (s *CatalogService) ListClasses(ctx context.Context, filter models.ClassFilter) ([]models.Class, *models.Pagination, error) {
	classes, total, err := s.classes.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classes")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	return classes, models.NewPagination(page, size, total), nil
}

// GetClass loads one class.
func (s *CatalogService) GetClass(ctx context.Context, id string) (*models.Class, error) {
	class, err := s.classes.FindByID(ctx, id)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "class not found")
	}
	return class, nil
}

// ListTeachers returns teachers with pagination metadata.
func (s *CatalogService) ListTeachers(ctx context.Context, filter models.TeacherFilter) ([]models.Teacher, *models.Pagination, error) {
	teachers, total, err := s.teachers.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list teachers")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	return teachers, models.NewPagination(page, size, total), nil
}

// ListFacilities returns all facilities, cached.
func (s *CatalogService) ListFacilities(ctx context.Context) ([]models.Facility, error) {
	const key = "catalog:facilities"
	var facilities []models.Facility
	if s.cache.Get(ctx, key, &facilities) {
		return facilities, nil
	}
	facilities, err := s.rooms.ListFacilities(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list facilities")
	}
	s.cache.Set(ctx, key, facilities, s.cacheTTL)
	return facilities, nil
}

// ListRooms returns the rooms of a facility, cached per facility.
func (s *CatalogService) ListRooms(ctx context.Context, q dto.RoomQuery) ([]models.Room, error) {
	if err := s.validator.Struct(q); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid room query")
	}
	key := fmt.Sprintf("catalog:rooms:%s", q.FacilityID)
	var rooms []models.Room
	if s.cache.Get(ctx, key, &rooms) {
		return rooms, nil
	}
	rooms, err := s.rooms.ListByFacility(ctx, q.FacilityID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list rooms")
	}
	s.cache.Set(ctx, key, rooms, s.cacheTTL)
	return rooms, nil
}

// ListCourses returns the program courses a class draws its subjects from.
func (s *CatalogService) ListCourses(ctx context.Context, q dto.CourseQuery) ([]models.Course, error) {
	if err := s.validator.Struct(q); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course query")
	}
	key := fmt.Sprintf("catalog:courses:%d:%s", q.IntakeYear, q.MajorID)
	var courses []models.Course
	if s.cache.Get(ctx, key, &courses) {
		return courses, nil
	}
	courses, err := s.courses.ListByProgram(ctx, q.IntakeYear, q.MajorID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	s.cache.Set(ctx, key, courses, s.cacheTTL)
	return courses, nil
}
