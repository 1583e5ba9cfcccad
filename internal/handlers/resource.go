package handlers

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"Saarthi/internal/model"
	"Saarthi/internal/service"
	"Saarthi/internal/viewer"
)

// maxAddBody — предел тела POST /api/resources: base64 файла плюс поля формы.
const maxAddBody = service.MaxUploadBytes*4/3 + 64*1024

// ResourceHandler обслуживает CRUD ресурсов, скачивание и предпросмотр.
type ResourceHandler struct {
	Vault  *service.VaultService
	Logger *zap.SugaredLogger
}

// NewResourceHandler создаёт хендлер ресурсов
func NewResourceHandler(vault *service.VaultService, logger *zap.SugaredLogger) *ResourceHandler {
	return &ResourceHandler{Vault: vault, Logger: logger}
}

type ResourceDTO struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
	FileName    string `json:"fileName,omitempty"`
	FileSize    int64  `json:"fileSize,omitempty"`
	FileSizeStr string `json:"fileSizeHuman,omitempty"`
}

func toDTO(r model.Resource) ResourceDTO {
	dto := ResourceDTO{
		ID:          r.ID,
		Type:        string(r.Type),
		Title:       r.Title,
		Content:     r.Content,
		Description: r.Description,
		CreatedAt:   r.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	if r.HasFile() {
		dto.FileName = r.FileName
		dto.FileSize = r.FileSize
		dto.FileSizeStr = humanize.IBytes(uint64(r.FileSize))
	}
	return dto
}

// AddRequest — тело POST /api/resources. File.Data передаётся в base64.
type AddRequest struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	Description string `json:"description"`
	File        *struct {
		Name     string `json:"name"`
		MIMEType string `json:"mimeType,omitempty"`
		Data     []byte `json:"data"`
	} `json:"file,omitempty"`
}

// List возвращает ресурсы; ?type= ограничивает тип, ?q= ищет по title/content.
func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) {
	var list []model.Resource
	if raw := r.URL.Query().Get("type"); raw != "" {
		typ, err := model.ParseResourceType(raw)
		if err != nil {
			writeError(w, h.Logger, &service.ValidationError{Field: "type", Reason: err.Error()})
			return
		}
		list = h.Vault.Search(typ, r.URL.Query().Get("q"))
	} else {
		list = h.Vault.List()
	}
	out := make([]ResourceDTO, 0, len(list))
	for _, res := range list {
		out = append(out, toDTO(res))
	}
	writeJSON(w, http.StatusOK, out)
}

// Add создаёт ресурс
func (h *ResourceHandler) Add(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxAddBody)
	var req AddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			writeError(w, h.Logger, err)
			return
		}
		writeError(w, h.Logger, &service.ValidationError{Field: "body", Reason: "malformed JSON"})
		return
	}
	in := service.AddInput{
		Type:        model.ResourceType(req.Type),
		Title:       req.Title,
		Content:     req.Content,
		Description: req.Description,
	}
	if req.File != nil {
		in.Upload = &service.Upload{FileName: req.File.Name, Data: req.File.Data, MIMEType: req.File.MIMEType}
		if in.Title == "" {
			in.Title = service.DefaultTitle(req.File.Name)
		}
	}
	res, err := h.Vault.Add(r.Context(), in)
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDTO(res))
}

// Counts возвращает количество ресурсов по типам
func (h *ResourceHandler) Counts(w http.ResponseWriter, r *http.Request) {
	counts := h.Vault.Counts()
	out := make(map[string]int, len(counts))
	for t, n := range counts {
		out[string(t)] = n
	}
	writeJSON(w, http.StatusOK, out)
}

// Remove удаляет ресурс. Отсутствующий id тоже даёт 204.
func (h *ResourceHandler) Remove(w http.ResponseWriter, r *http.Request) {
	if err := h.Vault.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, h.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Download отдаёт файл ресурса; 204, если скачивать нечего.
func (h *ResourceHandler) Download(w http.ResponseWriter, r *http.Request) {
	f, ok, err := h.Vault.Download(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Header().Set("Content-Type", f.Blob.MIMEType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": f.Name}))
	w.Header().Set("Content-Length", strconv.FormatInt(f.Blob.Size(), 10))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(f.Blob.Data)
}

type PreviewDTO struct {
	Kind      string `json:"kind"`
	FileName  string `json:"fileName,omitempty"`
	MIMEType  string `json:"mimeType,omitempty"`
	DataURI   string `json:"dataUri,omitempty"`
	Text      string `json:"text,omitempty"`
	Page      int    `json:"page,omitempty"`
	PageCount int    `json:"pageCount,omitempty"`
	Failed    bool   `json:"failed,omitempty"`
	Message   string `json:"message,omitempty"`
}

// Preview рендерит просмотр файла; ?page= выбирает страницу pdf.
func (h *ResourceHandler) Preview(w http.ResponseWriter, r *http.Request) {
	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, h.Logger, &service.ValidationError{Field: "page", Reason: "must be an integer"})
			return
		}
		page = n
	}
	doc, err := h.Vault.Document(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.Logger, err)
		return
	}
	p := viewer.Render(doc)
	if page != 1 {
		p.Go(page)
	}
	dto := PreviewDTO{
		Kind:     p.Kind.String(),
		FileName: p.FileName,
		MIMEType: p.MIMEType,
		DataURI:  p.DataURI,
		Text:     p.Text,
		Failed:   p.Failed,
		Message:  p.Message,
	}
	if p.Pager != nil {
		dto.Page = p.Pager.Current()
		dto.PageCount = p.Pager.Count()
	}
	writeJSON(w, http.StatusOK, dto)
}
