package handlers

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"Saarthi/internal/assistant"
	"Saarthi/internal/config"
	"Saarthi/internal/middleware"
	"Saarthi/internal/service"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	vault *service.VaultService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)

	delays := assistant.DefaultDelays
	if config != nil {
		delays = assistant.Delays{Summary: config.SummaryDelay, Answer: config.AnswerDelay}
	}

	resourceHandler := NewResourceHandler(vault, logger)
	assistantHandler := NewAssistantHandler(vault, logger, delays)
	attendanceHandler := NewAttendanceHandler(logger)

	// Resource routes
	r.Get("/api/resources", resourceHandler.List)
	r.Post("/api/resources", resourceHandler.Add)
	r.Get("/api/resources/counts", resourceHandler.Counts)
	r.Delete("/api/resources/{id}", resourceHandler.Remove)
	r.Get("/api/resources/{id}/file", resourceHandler.Download)
	r.Get("/api/resources/{id}/preview", resourceHandler.Preview)

	// Assistant routes
	r.Get("/api/resources/{id}/summary", assistantHandler.Summary)
	r.Post("/api/resources/{id}/ask", assistantHandler.Ask)

	r.Post("/api/attendance", attendanceHandler.Calc)

	return &Handler{Router: r}
}
