package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"Saarthi/internal/attendance"
	"Saarthi/internal/service"
)

type AttendanceHandler struct {
	Logger *zap.SugaredLogger
}

func NewAttendanceHandler(logger *zap.SugaredLogger) *AttendanceHandler {
	return &AttendanceHandler{Logger: logger}
}

// AttendanceRequest — значения формы; required по умолчанию 75.
type AttendanceRequest struct {
	Total    json.Number `json:"total"`
	Attended json.Number `json:"attended"`
	Required json.Number `json:"required,omitempty"`
}

type AttendanceResponse struct {
	CurrentPercent float64 `json:"currentPercent"`
	CanSkip        int     `json:"canSkip"`
	NeedToAttend   int     `json:"needToAttend"`
	Unreachable    bool    `json:"unreachable,omitempty"`
	Status         string  `json:"status"`
	Message        string  `json:"message"`
}

func (h *AttendanceHandler) Calc(w http.ResponseWriter, r *http.Request) {
	var req AttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.Logger, &service.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}
	required := req.Required.String()
	if required == "" {
		required = "75"
	}
	res, ok := attendance.Parse(req.Total.String(), req.Attended.String(), required)
	if !ok {
		writeError(w, h.Logger, &service.ValidationError{Field: "attendance", Reason: "need total > 0, 0 <= attended <= total, 0 < required <= 100"})
		return
	}
	writeJSON(w, http.StatusOK, AttendanceResponse{
		CurrentPercent: res.CurrentPercent,
		CanSkip:        res.CanSkip,
		NeedToAttend:   res.NeedToAttend,
		Unreachable:    res.Unreachable,
		Status:         string(res.Status),
		Message:        res.Status.Label(),
	})
}
