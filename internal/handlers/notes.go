package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/Amke0501/Private-Notes-App/internal/auth"
	"github.com/Amke0501/Private-Notes-App/internal/metrics"
	"github.com/Amke0501/Private-Notes-App/internal/store"
)

type noteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NotesHandler serves the notes CRUD endpoints. Every method runs behind
// RequireSession; the owner id always comes from the verified identity.
type NotesHandler struct {
	notes   store.NoteStore
	metrics *metrics.Collector
}

func NewNotesHandler(notes store.NoteStore, collector *metrics.Collector) *NotesHandler {
	return &NotesHandler{notes: notes, metrics: collector}
}

func (h *NotesHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, auth.ErrMissingToken.Error())
		return
	}

	notes, err := h.notes.ListNotes(r.Context(), identity.UserID)
	if err != nil {
		slog.Error("failed to list notes", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.metrics.RecordNoteOp("list")
	writeJSON(w, http.StatusOK, map[string]interface{}{"notes": notes})
}

func (h *NotesHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, auth.ErrMissingToken.Error())
		return
	}

	var req noteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, "Title and content are required")
		return
	}

	note, err := h.notes.CreateNote(r.Context(), identity.UserID, req.Title, req.Content)
	if err != nil {
		slog.Error("failed to create note", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.metrics.RecordNoteOp("create")
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Note created successfully",
		"note":    note,
	})
}

func (h *NotesHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, auth.ErrMissingToken.Error())
		return
	}

	var req noteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		writeError(w, http.StatusBadRequest, "Title and content are required")
		return
	}

	id := mux.Vars(r)["id"]
	note, err := h.notes.UpdateNote(r.Context(), identity.UserID, id, req.Title, req.Content)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		slog.Error("failed to update note", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.metrics.RecordNoteOp("update")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Note updated successfully",
		"note":    note,
	})
}

func (h *NotesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, auth.ErrMissingToken.Error())
		return
	}

	id := mux.Vars(r)["id"]
	if err := h.notes.DeleteNote(r.Context(), identity.UserID, id); err != nil {
		slog.Error("failed to delete note", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	h.metrics.RecordNoteOp("delete")
	writeJSON(w, http.StatusOK, map[string]string{"message": "Note deleted successfully"})
}
