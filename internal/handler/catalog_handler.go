package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cec-hub/cec-timetable-api/internal/dto"
	"github.com/cec-hub/cec-timetable-api/internal/models"
	"github.com/cec-hub/cec-timetable-api/internal/service"
	appErrors "github.com/cec-hub/cec-timetable-api/pkg/errors"
	"github.com/cec-hub/cec-timetable-api/pkg/response"
)

// CatalogHandler serves the reference data the timetable editor picks from.
type CatalogHandler struct {
	catalog *service.CatalogService
	weeks   *service.WeekService
}

// NewCatalogHandler creates a new handler.
func NewCatalogHandler(catalog *service.CatalogService, weeks *service.WeekService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, weeks: weeks}
}

// ListClasses godoc
// @Summary List classes
// @Tags Catalog
// @Produce json
// @Param facility_id query string false "Facility filter"
// @Param major_id query string false "Major filter"
// @Param search query string false "Code or name search"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /classes [get]
func (h *CatalogHandler) ListClasses(c *gin.Context) {
	filter := models.ClassFilter{
		FacilityID: c.Query("facility_id"),
		MajorID:    c.Query("major_id"),
		Search:     c.Query("search"),
		Page:       queryInt(c, "page", 1),
		PageSize:   queryInt(c, "page_size", 20),
	}
	classes, pagination, err := h.catalog.ListClasses(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classes, pagination)
}

// ListTeachers godoc
// @Summary List teachers
// @Tags Catalog
// @Produce json
// @Param search query string false "Name or email search"
// @Param active query bool false "Active filter"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /teachers [get]
func (h *CatalogHandler) ListTeachers(c *gin.Context) {
	filter := models.TeacherFilter{
		Search:   c.Query("search"),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 20),
	}
	if raw := c.Query("active"); raw != "" {
		active := raw == "true"
		filter.Active = &active
	}
	teachers, pagination, err := h.catalog.ListTeachers(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teachers, pagination)
}

// ListFacilities godoc
// @Summary List facilities
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /facilities [get]
func (h *CatalogHandler) ListFacilities(c *gin.Context) {
	facilities, err := h.catalog.ListFacilities(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, facilities, nil)
}

// ListRooms godoc
// @Summary List rooms of a facility
// @Tags Catalog
// @Produce json
// @Param facility_id query string true "Facility"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /rooms [get]
func (h *CatalogHandler) ListRooms(c *gin.Context) {
	var q dto.RoomQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid room query"))
		return
	}
	rooms, err := h.catalog.ListRooms(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rooms, nil)
}

// ListCourses godoc
// @Summary List program courses
// @Tags Catalog
// @Produce json
// @Param intake_year query int true "Intake year"
// @Param major_id query string true "Major"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /courses [get]
func (h *CatalogHandler) ListCourses(c *gin.Context) {
	var q dto.CourseQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid course query"))
		return
	}
	courses, err := h.catalog.ListCourses(c.Request.Context(), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses, nil)
}

// ListWeeks godoc
// @Summary List the weeks of a term
// @Tags Catalog
// @Produce json
// @Param term query string true "Term (HK1, HK2, HK3)"
// @Param academic_year query int true "Academic year"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /weeks [get]
func (h *CatalogHandler) ListWeeks(c *gin.Context) {
	term := models.Term(c.Query("term"))
	year, _ := strconv.Atoi(c.Query("academic_year"))
	if !term.Valid() || year <= 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "term and academic_year are required"))
		return
	}
	weeks, err := h.weeks.WeeksOfTerm(term, year)
	if err != nil {
		response.Error(c, err)
		return
	}
	current, err := h.weeks.CurrentWeek(term, year, time.Now().UTC())
	if err != nil {
		response.Error(c, err)
		return
	}
	meta := map[string]interface{}{}
	if current != nil {
		meta["current_week"] = current.Week
	}
	response.JSON(c, http.StatusOK, weeks, nil, meta)
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
