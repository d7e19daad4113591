package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/speernotes/notes-system/internal/core/ports"
)

// NoteHandler serves the CRUD, share, and search endpoints for notes.
type NoteHandler struct {
	service ports.NotesService
}

func NewNoteHandler(service ports.NotesService) *NoteHandler {
	return &NoteHandler{service: service}
}

// List returns all notes owned by the caller.
//
// @Summary      List own notes
// @Tags         notes
// @Produce      json
// @Success      200  {array}  noteResponse
// @Security     BearerAuth
// @Router       /api/notes [get]
func (h *NoteHandler) List(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	notes, err := h.service.List(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toNoteResponses(notes))
}

// Get returns a single note visible to the caller.
//
// @Summary      Get a note by id
// @Tags         notes
// @Produce      json
// @Param        id   path      string  true  "Note id"
// @Success      200  {object}  noteResponse
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/notes/{id} [get]
func (h *NoteHandler) Get(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	note, err := h.service.Get(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toNoteResponse(note))
}

// Create stores a new note owned by the caller.
//
// @Summary      Create a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        body  body      createNoteRequest  true  "Note fields"
// @Success      201   {object}  noteResponse
// @Failure      400   {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/notes [post]
func (h *NoteHandler) Create(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req createNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	note, err := h.service.Create(c.Request().Context(), p, ports.CreateNoteInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toNoteResponse(note))
}

// Update applies a partial update to an owned note.
//
// @Summary      Update a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Note id"
// @Param        body  body      updateNoteRequest  true  "Fields to change"
// @Success      200   {object}  noteResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/notes/{id} [put]
func (h *NoteHandler) Update(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req updateNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	note, err := h.service.Update(c.Request().Context(), p, c.Param("id"), ports.UpdateNoteInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toNoteResponse(note))
}

// Delete removes an owned note.
//
// @Summary      Delete a note
// @Tags         notes
// @Produce      json
// @Param        id   path      string  true  "Note id"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/notes/{id} [delete]
func (h *NoteHandler) Delete(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	if err := h.service.Delete(c.Request().Context(), p, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{
		Message: fmt.Sprintf("Note %s is deleted successfully.", id),
	})
}

// Share grants another user read access to an owned note.
//
// @Summary      Share a note with another user
// @Tags         notes
// @Produce      json
// @Param        id     path      string  true  "Note id"
// @Param        email  query     string  true  "Recipient email"
// @Success      200    {object}  messageResponse
// @Failure      400    {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/notes/{id}/share [post]
func (h *NoteHandler) Share(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	email := c.QueryParam("email")
	if email == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "email is required")
	}

	shared, err := h.service.Share(c.Request().Context(), p, id, email)
	if err != nil {
		return err
	}

	if !shared {
		return c.JSON(http.StatusOK, messageResponse{
			Message: fmt.Sprintf("Failed to share note for the id %s", id),
		})
	}
	return c.JSON(http.StatusOK, messageResponse{
		Message: fmt.Sprintf("Note having the id %s shared successfully to the email: %s", id, email),
	})
}

// Search runs a full-text query over notes visible to the caller.
//
// @Summary      Search notes
// @Tags         notes
// @Produce      json
// @Param        query  query     string  true  "Search keywords"
// @Success      200    {array}   noteResponse
// @Failure      400    {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/notes/search [get]
func (h *NoteHandler) Search(c echo.Context) error {
	p, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	query := c.QueryParam("query")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query is required")
	}

	notes, err := h.service.Search(c.Request().Context(), p, query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toNoteResponses(notes))
}
