package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/prodotask/server/internal/application/services"
	"github.com/prodotask/server/internal/domain/entities"
	"github.com/prodotask/server/internal/infrastructure/logger"
	"github.com/prodotask/server/internal/ports"
)

// NoteHandler handles note requests
type NoteHandler struct {
	noteService *services.NoteService
	logger      *logger.Logger
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(noteService *services.NoteService, logger *logger.Logger) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
		logger:      logger,
	}
}

func (h *NoteHandler) ownedNote(c echo.Context) (*entities.Note, error) {
	id, err := parseID(c)
	if err != nil {
		return nil, err
	}

	note, err := h.noteService.GetNote(c.Request().Context(), id)
	if err != nil {
		return nil, serviceError(err)
	}
	if note.UserID != userIDFromContext(c) {
		return nil, echo.NewHTTPError(http.StatusNotFound, entities.ErrNoteNotFound.Error())
	}

	return note, nil
}

// CreateNote handles note creation
func (h *NoteHandler) CreateNote(c echo.Context) error {
	var req ports.CreateNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	note, err := h.noteService.CreateNote(c.Request().Context(), userIDFromContext(c), req)
	if err != nil {
		h.logger.Error("Create note failed", "error", err)
		return serviceError(err)
	}

	return c.JSON(http.StatusCreated, note)
}

// ListNotes lists the user's notes, most recently updated first
func (h *NoteHandler) ListNotes(c echo.Context) error {
	notes, err := h.noteService.ListNotes(c.Request().Context(), userIDFromContext(c))
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, notes)
}

// SearchNotes finds notes whose title or content contains ?q=
func (h *NoteHandler) SearchNotes(c echo.Context) error {
	term := c.QueryParam("q")
	if term == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q query parameter is required")
	}

	notes, err := h.noteService.SearchNotes(c.Request().Context(), userIDFromContext(c), term)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, notes)
}

// RecentNotes returns the most recently updated notes, capped by ?limit=
func (h *NoteHandler) RecentNotes(c echo.Context) error {
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid limit")
		}
		limit = parsed
	}

	notes, err := h.noteService.RecentNotes(c.Request().Context(), userIDFromContext(c), limit)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, notes)
}

// GetNote returns one note
func (h *NoteHandler) GetNote(c echo.Context) error {
	note, err := h.ownedNote(c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, note)
}

// UpdateNote partially updates a note's title and content
func (h *NoteHandler) UpdateNote(c echo.Context) error {
	note, err := h.ownedNote(c)
	if err != nil {
		return err
	}

	var req ports.UpdateNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.noteService.UpdateNote(c.Request().Context(), note.ID, req)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, updated)
}

// DeleteNote removes a note
func (h *NoteHandler) DeleteNote(c echo.Context) error {
	note, err := h.ownedNote(c)
	if err != nil {
		return err
	}

	deleted, err := h.noteService.DeleteNote(c.Request().Context(), note.ID)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, DeletedResponse{Deleted: deleted})
}
