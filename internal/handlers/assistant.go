package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"Saarthi/internal/assistant"
	"Saarthi/internal/service"
)

// AssistantHandler отдаёт сводку документа и ответы на вопросы.
// Сессия живёт в пределах запроса: обрыв соединения отменяет ответ.
type AssistantHandler struct {
	Vault  *service.VaultService
	Logger *zap.SugaredLogger
	Delays assistant.Delays
}

func NewAssistantHandler(vault *service.VaultService, logger *zap.SugaredLogger, delays assistant.Delays) *AssistantHandler {
	return &AssistantHandler{Vault: vault, Logger: logger, Delays: delays}
}

type SummaryResponse struct {
	Summary string `json:"summary"`
}

type AskRequest struct {
	Question string `json:"question"`
}

type AskResponse struct {
	Messages []assistant.Message `json:"messages"`
}

func (h *AssistantHandler) Summary(w http.ResponseWriter, r *http.Request) {
	doc, err := h.Vault.Document(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	sess := assistant.NewSession(r.Context(), doc, h.Delays)
	defer sess.Close()
	summary, err := sess.Summary(r.Context())
	if err != nil {
		// клиент ушёл, отвечать некому
		h.Logger.Debugw("summary abandoned", "error", err)
		return
	}
	writeJSON(w, http.StatusOK, SummaryResponse{Summary: summary})
}

func (h *AssistantHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.Logger, &service.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}
	doc, err := h.Vault.Document(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	delays := h.Delays
	delays.Summary = 0
	sess := assistant.NewSession(r.Context(), doc, delays)
	defer sess.Close()
	task, err := sess.Ask(req.Question)
	if err != nil {
		writeError(w, h.Logger, &service.ValidationError{Field: "question", Reason: err.Error()})
		return
	}
	if _, err := task.Wait(r.Context()); err != nil {
		h.Logger.Debugw("answer abandoned", "error", err)
		return
	}
	writeJSON(w, http.StatusOK, AskResponse{Messages: sess.Messages()})
}
