package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/marewang/final-bnn/internal/services"
)

// ReminderHandler serves the due-soon listings.
type ReminderHandler struct {
	reminderService *services.ReminderService
}

// NewReminderHandler constructs a handler with the provided service.
func NewReminderHandler(reminderService *services.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminderService: reminderService}
}

// ReminderRouter registers reminder routes on the given router.
// The caller mounts it behind the session middleware.
func ReminderRouter(r chi.Router, reminderService *services.ReminderService) {
	handler := NewReminderHandler(reminderService)

	r.Get("/", handler.ListReminders)
}

// ListReminders returns the KGB and Pangkat records coming due inside
// the requested window. Out-of-range or missing months values are
// coerced to a permitted window rather than rejected.
func (h *ReminderHandler) ListReminders(w http.ResponseWriter, r *http.Request) {
	months, _ := strconv.Atoi(r.URL.Query().Get("months"))

	reminders, err := h.reminderService.DueSoon(r.Context(), months)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list reminders")
		return
	}

	writeJSON(w, http.StatusOK, reminders)
}
