package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cec-hub/cec-timetable-api/internal/dto"
	"github.com/cec-hub/cec-timetable-api/internal/models"
	appErrors "github.com/cec-hub/cec-timetable-api/pkg/errors"
)

type roomRepoStub struct {
	rooms []models.Room
}

func (s *roomRepoStub) ListFacilities(context.Context) ([]models.Facility, error) {
	return nil, nil
}

func (s *roomRepoStub) ListByFacility(context.Context, string) ([]models.Room, error) {
	return s.rooms, nil
}

type courseRepoStub struct {
	courses []models.Course
}

func (s *courseRepoStub) ListByProgram(context.Context, int, string) ([]models.Course, error) {
	return s.courses, nil
}

func newTestCatalogService(rooms *roomRepoStub, courses *courseRepoStub) *CatalogService {
	return NewCatalogService(nil, nil, rooms, courses, nil, nil, 0, nil)
}

func TestCatalogServiceListRooms(t *testing.T) {
	svc := newTestCatalogService(&roomRepoStub{rooms: []models.Room{{ID: "r1"}}}, &courseRepoStub{})

	rooms, err := svc.ListRooms(context.Background(), dto.RoomQuery{FacilityID: "f1"})
	require.NoError(t, err)
	assert.Len(t, rooms, 1)

	_, err = svc.ListRooms(context.Background(), dto.RoomQuery{})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestCatalogServiceListCoursesRejectsBadIntakeYear(t *testing.T) {
	svc := newTestCatalogService(&roomRepoStub{}, &courseRepoStub{})

	_, err := svc.ListCourses(context.Background(), dto.CourseQuery{IntakeYear: 5, MajorID: "m1"})
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)

	_, err = svc.ListCourses(context.Background(), dto.CourseQuery{IntakeYear: 2025, MajorID: "m1"})
	assert.NoError(t, err)
}
