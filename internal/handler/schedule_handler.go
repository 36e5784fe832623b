package handler

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/cec-hub/cec-timetable-api/internal/dto"
	"github.com/cec-hub/cec-timetable-api/internal/models"
	"github.com/cec-hub/cec-timetable-api/internal/service"
	appErrors "github.com/cec-hub/cec-timetable-api/pkg/errors"
	"github.com/cec-hub/cec-timetable-api/pkg/response"
)

// ScheduleHandler serves the committed timetable store.
type ScheduleHandler struct {
	schedules  *service.ScheduleService
	catalog    *service.CatalogService
	exporter   *service.ExportService
	exportJobs *service.ExportJobService
}

// NewScheduleHandler creates a new handler.
func NewScheduleHandler(schedules *service.ScheduleService, catalog *service.CatalogService, exporter *service.ExportService, exportJobs *service.ExportJobService) *ScheduleHandler {
	return &ScheduleHandler{schedules: schedules, catalog: catalog, exporter: exporter, exportJobs: exportJobs}
}

// List godoc
// @Summary List committed timetable entries
// @Tags Schedules
// @Produce json
// @Param class_id query string true "Class"
// @Param term query string true "Term (HK1, HK2, HK3)"
// @Param academic_year query int true "Academic year"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /schedules [get]
func (h *ScheduleHandler) List(c *gin.Context) {
	var query dto.ScheduleQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid schedule query"))
		return
	}
	entries, err := h.schedules.ListByClassTerm(c.Request.Context(), query.ClassID, models.Term(query.Term), query.AcademicYear)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}

// Commit godoc
// @Summary Commit a batch of assignments
// @Description Store assignments directly, skipping any whose slot, teacher or room is already booked
// @Tags Schedules
// @Accept json
// @Produce json
// @Param payload body dto.CommitRequest true "Batch"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /schedules [post]
func (h *ScheduleHandler) Commit(c *gin.Context) {
	var req dto.CommitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid commit payload"))
		return
	}
	result, err := h.schedules.CommitBatch(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Get godoc
// @Summary Fetch a committed timetable entry
// @Tags Schedules
// @Produce json
// @Param id path string true "Entry identifier"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /schedules/{id} [get]
func (h *ScheduleHandler) Get(c *gin.Context) {
	entry, err := h.schedules.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entry, nil)
}

// Delete godoc
// @Summary Delete a committed timetable entry
// @Tags Schedules
// @Produce json
// @Param id path string true "Entry identifier"
// @Success 204 {object} response.Envelope
// @Failure 410 {object} response.Envelope
// @Security BearerAuth
// @Router /schedules/{id} [delete]
func (h *ScheduleHandler) Delete(c *gin.Context) {
	if err := h.schedules.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Export godoc
// @Summary Export a class timetable
// @Description Render the committed timetable as PDF (default) or CSV
// @Tags Schedules
// @Produce application/pdf
// @Param class_id query string true "Class"
// @Param term query string true "Term (HK1, HK2, HK3)"
// @Param academic_year query int true "Academic year"
// @Param from_week query int false "First week to render"
// @Param to_week query int false "Last week to render"
// @Param format query string false "pdf or csv"
// @Success 200 {file} binary
// @Security BearerAuth
// @Router /schedules/export [get]
func (h *ScheduleHandler) Export(c *gin.Context) {
	var query dto.ExportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export query"))
		return
	}

	class, err := h.catalog.GetClass(c.Request.Context(), query.ClassID)
	if err != nil {
		response.Error(c, err)
		return
	}

	term := models.Term(query.Term)
	if c.Query("format") == "csv" {
		payload, err := h.exporter.RenderCSV(c.Request.Context(), query.ClassID, term, query.AcademicYear)
		if err != nil {
			response.Error(c, err)
			return
		}
		filename := fmt.Sprintf("timetable_%s_%s_%d.csv", class.Code, term, query.AcademicYear)
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusOK, "text/csv", payload)
		return
	}

	payload, err := h.exporter.RenderPDF(c.Request.Context(), class.Code, query.ClassID, term, query.AcademicYear, query.FromWeek, query.ToWeek)
	if err != nil {
		response.Error(c, err)
		return
	}
	filename := fmt.Sprintf("timetable_%s_%s_%d.pdf", class.Code, term, query.AcademicYear)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", payload)
}

// EnqueueExport godoc
// @Summary Queue a timetable export
// @Description Render the timetable in the background and poll for a download link
// @Tags Schedules
// @Produce json
// @Param class_id query string true "Class"
// @Param term query string true "Term (HK1, HK2, HK3)"
// @Param academic_year query int true "Academic year"
// @Param from_week query int false "First week to render"
// @Param to_week query int false "Last week to render"
// @Success 202 {object} response.Envelope
// @Security BearerAuth
// @Router /schedules/export/jobs [post]
func (h *ScheduleHandler) EnqueueExport(c *gin.Context) {
	var query dto.ExportQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export query"))
		return
	}
	class, err := h.catalog.GetClass(c.Request.Context(), query.ClassID)
	if err != nil {
		response.Error(c, err)
		return
	}
	job, err := h.exportJobs.Enqueue(query.ClassID, class.Code, models.Term(query.Term), query.AcademicYear, query.FromWeek, query.ToWeek)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, job, nil)
}

// ExportJob godoc
// @Summary Poll an export job
// @Tags Schedules
// @Produce json
// @Param id path string true "Job identifier"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /schedules/export/jobs/{id} [get]
func (h *ScheduleHandler) ExportJob(c *gin.Context) {
	job, err := h.exportJobs.Get(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, job, nil)
}

// DownloadExport godoc
// @Summary Download a finished export
// @Tags Schedules
// @Produce application/pdf
// @Param token query string true "Signed download token"
// @Success 200 {file} binary
// @Router /schedules/export/download [get]
func (h *ScheduleHandler) DownloadExport(c *gin.Context) {
	name, payload, err := h.exportJobs.OpenDownload(c.Query("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(name)))
	c.Data(http.StatusOK, "application/pdf", payload)
}
