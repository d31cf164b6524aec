package http

import (
	"net/http"
)

type reminderRequest struct {
	ExpiresAt    int64 `json:"expiresAt"`
	ReminderMins int   `json:"reminderMins"`
}

// handleScheduleReminder arranges the parking-expiry reminder. Scheduling
// never fails from the caller's perspective; an unusable fire time simply
// leaves no reminder pending.
func (s *Server) handleScheduleReminder(w http.ResponseWriter, r *http.Request) {
	var req reminderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}
	if req.ExpiresAt <= 0 {
		UnprocessableEntityError("expiresAt must be a positive timestamp").Write(w)
		return
	}
	if req.ReminderMins < 0 {
		UnprocessableEntityError("reminderMins must not be negative").Write(w)
		return
	}

	s.reminders.ScheduleParkingReminder(r.Context(), req.ExpiresAt, req.ReminderMins)
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleCancelReminder(w http.ResponseWriter, r *http.Request) {
	s.reminders.CancelParkingReminder(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
