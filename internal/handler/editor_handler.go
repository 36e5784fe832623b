package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cec-hub/cec-timetable-api/internal/dto"
	"github.com/cec-hub/cec-timetable-api/internal/service"
	appErrors "github.com/cec-hub/cec-timetable-api/pkg/errors"
	"github.com/cec-hub/cec-timetable-api/pkg/response"
)

// EditorHandler exposes the interactive timetable editor over HTTP. Each
// route addresses a live session by its id.
type EditorHandler struct {
	editor *service.EditorService
}

// NewEditorHandler creates a new handler.
func NewEditorHandler(editor *service.EditorService) *EditorHandler {
	return &EditorHandler{editor: editor}
}

// CreateSession godoc
// @Summary Open an editing session
// @Description Open a session seeded with the class's committed timetable
// @Tags Editor
// @Accept json
// @Produce json
// @Param payload body dto.CreateSessionRequest true "Session target"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /editor/sessions [post]
func (h *EditorHandler) CreateSession(c *gin.Context) {
	var req dto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid session payload"))
		return
	}
	sess, grid, err := h.editor.CreateSession(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.CreateSessionResponse{SessionID: sess.ID, Grid: grid, Pairs: nil})
}

// State godoc
// @Summary Session snapshot
// @Tags Editor
// @Produce json
// @Param id path string true "Session"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /editor/sessions/{id} [get]
func (h *EditorHandler) State(c *gin.Context) {
	grid, pairs, err := h.editor.Snapshot(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.SessionStateResponse{Grid: grid, Pairs: pairs}, nil)
}

// CloseSession godoc
// @Summary Discard an editing session
// @Tags Editor
// @Param id path string true "Session"
// @Success 204 {object} response.Envelope
// @Security BearerAuth
// @Router /editor/sessions/{id} [delete]
func (h *EditorHandler) CloseSession(c *gin.Context) {
	h.editor.CloseSession(c.Param("id"))
	response.NoContent(c)
}

// StagePair godoc
// @Summary Stage a subject-teacher pair
// @Tags Editor
// @Accept json
// @Produce json
// @Param id path string true "Session"
// @Param payload body dto.StagePairRequest true "Pair"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /editor/sessions/{id}/pairs [post]
func (h *EditorHandler) StagePair(c *gin.Context) {
	var req dto.StagePairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid pair payload"))
		return
	}
	if err := h.editor.AddPair(c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, req)
}

// RemovePair godoc
// @Summary Remove a staged pair
// @Tags Editor
// @Param id path string true "Session"
// @Param subject_code query string true "Subject"
// @Param teacher_id query string true "Teacher"
// @Success 204 {object} response.Envelope
// @Security BearerAuth
// @Router /editor/sessions/{id}/pairs [delete]
func (h *EditorHandler) RemovePair(c *gin.Context) {
	if err := h.editor.RemovePair(c.Param("id"), c.Query("subject_code"), c.Query("teacher_id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// SetSelection godoc
// @Summary Pick the active pair and delivery settings
// @Tags Editor
// @Accept json
// @Produce json
// @Param id path string true "Session"
// @Param payload body dto.SelectionRequest true "Selection"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /editor/sessions/{id}/selection [put]
func (h *EditorHandler) SetSelection(c *gin.Context) {
	var req dto.SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid selection payload"))
		return
	}
	if err := h.editor.SetSelection(c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"selected": req.SubjectCode != "" || req.TeacherID != ""}, nil)
}

// Click godoc
// @Summary Click a grid cell
// @Description Apply one cell click and return its outcome
// @Tags Editor
// @Accept json
// @Produce json
// @Param id path string true "Session"
// @Param payload body dto.ClickRequest true "Cell"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /editor/sessions/{id}/click [post]
func (h *EditorHandler) Click(c *gin.Context) {
	var req dto.ClickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid click payload"))
		return
	}
	outcome, err := h.editor.Click(c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, outcome, nil)
}

// Preview godoc
// @Summary Preview a grid cell
// @Description Report the cell's state and the conflicts a placement there would raise, without changing the session
// @Tags Editor
// @Produce json
// @Param id path string true "Session"
// @Param week query int true "ISO week"
// @Param day query string true "Day"
// @Param period query string true "Period"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /editor/sessions/{id}/preview [get]
func (h *EditorHandler) Preview(c *gin.Context) {
	var q dto.PreviewQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid preview query"))
		return
	}
	state, conflicts, err := h.editor.Preview(c.Param("id"), q)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.PreviewResponse{CellState: string(state), Conflicts: conflicts}, nil)
}

// Confirm godoc
// @Summary Confirm the pending prompt
// @Tags Editor
// @Produce json
// @Param id path string true "Session"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /editor/sessions/{id}/confirm [post]
func (h *EditorHandler) Confirm(c *gin.Context) {
	outcome, err := h.editor.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, outcome, nil)
}

// Cancel godoc
// @Summary Dismiss the pending prompt
// @Tags Editor
// @Param id path string true "Session"
// @Success 204 {object} response.Envelope
// @Security BearerAuth
// @Router /editor/sessions/{id}/cancel [post]
func (h *EditorHandler) Cancel(c *gin.Context) {
	if err := h.editor.Cancel(c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Validate godoc
// @Summary Validate the whole grid
// @Tags Editor
// @Produce json
// @Param id path string true "Session"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /editor/sessions/{id}/validate [post]
func (h *EditorHandler) Validate(c *gin.Context) {
	conflicts, err := h.editor.Validate(c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.ValidateResponse{Valid: len(conflicts) == 0, Conflicts: conflicts}, nil)
}

// Submit godoc
// @Summary Commit the session's staged assignments
// @Description Validate then store the staged assignments, reporting per-slot results
// @Tags Editor
// @Produce json
// @Param id path string true "Session"
// @Success 200 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Security BearerAuth
// @Router /editor/sessions/{id}/submit [post]
func (h *EditorHandler) Submit(c *gin.Context) {
	result, err := h.editor.Submit(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
