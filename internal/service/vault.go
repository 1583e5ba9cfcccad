package service

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"Saarthi/internal/model"
	"Saarthi/internal/repo"
	"Saarthi/internal/viewer"
)

// MaxUploadBytes — предельный размер загружаемого файла.
const MaxUploadBytes int64 = 2 * 1024 * 1024

// Upload — файл, прикладываемый к документу при создании.
type Upload struct {
	FileName string
	Data     []byte
	MIMEType string // пусто — определить по расширению или содержимому
}

// AddInput — параметры создания ресурса.
type AddInput struct {
	Type        model.ResourceType
	Title       string
	Content     string
	Description string
	Upload      *Upload
}

// File — содержимое для скачивания вместе с именем файла.
type File struct {
	Name string
	Blob model.Blob
}

// Report — результат проверки согласованности метаданных и файлов.
type Report struct {
	Dangling []string // ресурсы с fileName, для которых файла нет
	Orphans  []string // файлы без ресурса
}

// Consistent сообщает, что нарушений не найдено.
func (r Report) Consistent() bool {
	return len(r.Dangling) == 0 && len(r.Orphans) == 0
}

// Option настраивает VaultService.
type Option func(*VaultService)

// WithLogger задаёт логгер сервиса.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *VaultService) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock задаёт источник времени для createdAt.
func WithClock(now func() time.Time) Option {
	return func(s *VaultService) { s.now = now }
}

// WithIDGenerator задаёт генератор идентификаторов ресурсов.
func WithIDGenerator(gen func() string) Option {
	return func(s *VaultService) { s.newID = gen }
}

// VaultService владеет коллекцией ресурсов в памяти и синхронизирует её
// с MetadataStore и BlobStore. Операции выполняются строго по одной.
type VaultService struct {
	mu        sync.Mutex
	meta      repo.MetadataStore
	blobs     repo.BlobStore
	logger    *zap.SugaredLogger
	now       func() time.Time
	newID     func() string
	resources []model.Resource
}

// Open создаёт сервис и загружает коллекцию. Повреждённые метаданные
// логируются, хранилище считается пустым.
func Open(ctx context.Context, meta repo.MetadataStore, blobs repo.BlobStore, opts ...Option) (*VaultService, error) {
	s := &VaultService{
		meta:   meta,
		blobs:  blobs,
		logger: zap.NewNop().Sugar(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	res, err := meta.Load(ctx)
	if err != nil {
		var de *DeserializationError
		if !errors.As(err, &de) {
			return nil, fmt.Errorf("load vault: %w", err)
		}
		s.logger.Warnw("vault metadata is corrupted, starting empty", "key", de.Key, "error", de.Err)
		res = []model.Resource{}
	}
	s.resources = res
	return s, nil
}

// Add создаёт ресурс. Файл записывается до метаданных: если файл не поместился,
// метаданные не меняются.
func (s *VaultService) Add(ctx context.Context, in AddInput) (model.Resource, error) {
	res, blob, err := prepare(in)
	if err != nil {
		return model.Resource{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res.ID = s.newID()
	res.CreatedAt = s.now()

	if blob != nil {
		if err := s.blobs.Put(ctx, res.ID, *blob); err != nil {
			return model.Resource{}, fmt.Errorf("store file %q: %w", res.FileName, err)
		}
	}

	next := make([]model.Resource, 0, len(s.resources)+1)
	next = append(next, res)
	next = append(next, s.resources...)
	if err := s.meta.SaveAll(ctx, next); err != nil {
		if blob != nil {
			// метаданные не записаны — файл не должен остаться сиротой
			if rmErr := s.blobs.Remove(ctx, res.ID); rmErr != nil {
				s.logger.Warnw("failed to roll back file after metadata error",
					"id", res.ID, "error", rmErr)
			}
		}
		return model.Resource{}, fmt.Errorf("save resources: %w", err)
	}
	s.resources = next

	s.logger.Infow("resource added", "id", res.ID, "type", res.Type, "file", res.FileName)
	return res, nil
}

// Remove удаляет ресурс и, по возможности, его файл. Ошибка удаления файла
// только логируется. Удаление отсутствующего ресурса не является ошибкой.
func (s *VaultService) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.indexOf(id); idx >= 0 {
		next := make([]model.Resource, 0, len(s.resources)-1)
		next = append(next, s.resources[:idx]...)
		next = append(next, s.resources[idx+1:]...)
		if err := s.meta.SaveAll(ctx, next); err != nil {
			return fmt.Errorf("save resources: %w", err)
		}
		s.resources = next
		s.logger.Infow("resource removed", "id", id)
	}

	if err := s.blobs.Remove(ctx, id); err != nil {
		s.logger.Warnw("failed to remove file", "id", id, "error", err)
	}
	return nil
}

// Search возвращает ресурсы типа typ, у которых title или content содержит query
// без учёта регистра. Пустой query возвращает все ресурсы типа. Порядок — новые первыми.
func (s *VaultService) Search(typ model.ResourceType, query string) []model.Resource {
	s.mu.Lock()
	defer s.mu.Unlock()

	needle := fold(query)
	out := []model.Resource{}
	for _, r := range s.resources {
		if r.Type != typ {
			continue
		}
		if needle != "" && !strings.Contains(fold(r.Title), needle) && !strings.Contains(fold(r.Content), needle) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// List возвращает все ресурсы, новые первыми.
func (s *VaultService) List() []model.Resource {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Resource, len(s.resources))
	copy(out, s.resources)
	return out
}

// Get возвращает ресурс по ID.
func (s *VaultService) Get(id string) (model.Resource, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexOf(id); idx >= 0 {
		return s.resources[idx], true
	}
	return model.Resource{}, false
}

// Counts возвращает количество ресурсов каждого типа.
func (s *VaultService) Counts() map[model.ResourceType]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := make(map[model.ResourceType]int, len(model.ResourceTypes))
	for _, t := range model.ResourceTypes {
		counts[t] = 0
	}
	for _, r := range s.resources {
		counts[r.Type]++
	}
	return counts
}

// Download возвращает файл ресурса. ok=false — скачивать нечего; это не ошибка.
func (s *VaultService) Download(ctx context.Context, id string) (File, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return File{}, false, nil
	}
	res := s.resources[idx]
	blob, ok, err := s.resolveBlob(ctx, res)
	if err != nil || !ok {
		return File{}, false, err
	}
	return File{Name: res.FileName, Blob: blob}, true, nil
}

// Document собирает ресурс и его файл (если он есть) для просмотра.
func (s *VaultService) Document(ctx context.Context, id string) (viewer.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return viewer.Document{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	doc := viewer.Document{Resource: s.resources[idx]}
	blob, ok, err := s.resolveBlob(ctx, doc.Resource)
	if err != nil {
		return viewer.Document{}, err
	}
	if ok {
		doc.Blob = &blob
	}
	return doc, nil
}

// Check сверяет метаданные с хранилищем файлов.
func (s *VaultService) Check(ctx context.Context) (Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.checkLocked(ctx)
}

// Prune удаляет файлы, на которые не ссылается ни один ресурс. Возвращает их число.
func (s *VaultService) Prune(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	report, err := s.checkLocked(ctx)
	if err != nil {
		return 0, err
	}
	for i, id := range report.Orphans {
		if err := s.blobs.Remove(ctx, id); err != nil {
			return i, fmt.Errorf("remove orphan file %s: %w", id, err)
		}
	}
	if n := len(report.Orphans); n > 0 {
		s.logger.Infow("orphan files pruned", "count", n)
	}
	return len(report.Orphans), nil
}

func (s *VaultService) checkLocked(ctx context.Context) (Report, error) {
	ids, err := s.blobs.IDs(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("list files: %w", err)
	}
	stored := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		stored[id] = struct{}{}
	}
	report := Report{Dangling: []string{}, Orphans: []string{}}
	known := make(map[string]struct{}, len(s.resources))
	for _, r := range s.resources {
		known[r.ID] = struct{}{}
		if _, ok := stored[r.ID]; r.HasFile() && !ok {
			report.Dangling = append(report.Dangling, r.ID)
		}
	}
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			report.Orphans = append(report.Orphans, id)
		}
	}
	return report, nil
}

// resolveBlob читает файл ресурса. Отсутствующий или повреждённый файл означает «файла нет».
func (s *VaultService) resolveBlob(ctx context.Context, res model.Resource) (model.Blob, bool, error) {
	if !res.HasFile() {
		return model.Blob{}, false, nil
	}
	blob, ok, err := s.blobs.Get(ctx, res.ID)
	if err != nil {
		var de *DeserializationError
		if errors.As(err, &de) {
			s.logger.Warnw("stored file is unreadable", "id", res.ID, "key", de.Key, "error", de.Err)
			return model.Blob{}, false, nil
		}
		return model.Blob{}, false, fmt.Errorf("read file %s: %w", res.ID, err)
	}
	if !ok {
		s.logger.Warnw("resource references a missing file", "id", res.ID, "file", res.FileName)
	}
	return blob, ok, nil
}

func (s *VaultService) indexOf(id string) int {
	for i, r := range s.resources {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// prepare проверяет ввод и собирает ресурс без ID и времени создания.
func prepare(in AddInput) (model.Resource, *model.Blob, error) {
	typ, err := model.ParseResourceType(string(in.Type))
	if err != nil {
		return model.Resource{}, nil, invalid("type", err.Error())
	}
	res := model.Resource{
		Type:        typ,
		Title:       strings.TrimSpace(in.Title),
		Content:     strings.TrimSpace(in.Content),
		Description: strings.TrimSpace(in.Description),
	}
	if res.Title == "" {
		return model.Resource{}, nil, invalid("title", "must not be empty")
	}

	var blob *model.Blob
	if in.Upload != nil {
		if res.Type != model.TypeDocument {
			return model.Resource{}, nil, invalid("file", "uploads are only supported for documents")
		}
		name := filepath.Base(strings.TrimSpace(in.Upload.FileName))
		if name == "" || name == "." || name == string(filepath.Separator) {
			return model.Resource{}, nil, invalid("file", "file name is required")
		}
		size := int64(len(in.Upload.Data))
		if size > MaxUploadBytes {
			return model.Resource{}, nil, &FileTooLargeError{Size: size, Limit: MaxUploadBytes}
		}
		blob = &model.Blob{MIMEType: detectMIMEType(name, in.Upload), Data: in.Upload.Data}
		res.FileName = name
		res.FileSize = size
	}

	if res.Content == "" {
		switch {
		case res.Type != model.TypeDocument:
			return model.Resource{}, nil, invalid("content", "must not be empty")
		case blob == nil:
			return model.Resource{}, nil, invalid("content", "document needs notes or a file")
		default:
			res.Content = model.UploadPlaceholder(res.FileName)
		}
	}
	return res, blob, nil
}

func detectMIMEType(name string, up *Upload) string {
	if mt := strings.TrimSpace(up.MIMEType); mt != "" {
		return mt
	}
	if mt := mime.TypeByExtension(filepath.Ext(name)); mt != "" {
		return mt
	}
	// расширение не распознано — сниффинг содержимого
	return http.DetectContentType(up.Data)
}

// DefaultTitle — имя файла без последнего расширения, как предлагает форма загрузки.
func DefaultTitle(fileName string) string {
	if strings.TrimSpace(fileName) == "" {
		return ""
	}
	name := filepath.Base(fileName)
	if i := strings.LastIndexByte(name, '.'); i >= 0 && i < len(name)-1 {
		return name[:i]
	}
	return name
}

func fold(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}
