package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Saarthi/internal/cli/bootstrap"
	"Saarthi/internal/config"
	"Saarthi/internal/model"
)

func resourcesOf(t *testing.T, cfg *config.Config) []model.Resource {
	t.Helper()
	v, done, err := bootstrap.OpenVault(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer func() { _ = done() }()
	return v.List()
}

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestAdd_Run_Variants(t *testing.T) {
	ctx := context.Background()
	cfg := withTempConfig(t)

	out := withStdoutCapture(t, func() {
		require.NoError(t, (addCmd{}).Run(ctx, cfg, []string{"link", "Go docs", "https://go.dev"}))
	})
	assert.Contains(t, out, "title: Go docs")

	require.NoError(t, (addCmd{}).Run(ctx, cfg, []string{"-desc", "git basics", "code", "Git stash", "git stash pop"}))

	notes := writeTempFile(t, "lecture-notes.txt", "hello vault")
	out = withStdoutCapture(t, func() {
		require.NoError(t, (addCmd{}).Run(ctx, cfg, []string{"-file", notes, "document"}))
	})
	assert.Contains(t, out, "title: lecture-notes")
	assert.Contains(t, out, "file:  lecture-notes.txt (11 B)")

	list := resourcesOf(t, cfg)
	require.Len(t, list, 3)
	assert.Equal(t, model.TypeDocument, list[0].Type)
	assert.Equal(t, "[Uploaded: lecture-notes.txt]", list[0].Content)
	assert.Equal(t, "git basics", list[1].Description)

	assert.Equal(t, ErrUsage, (addCmd{}).Run(ctx, cfg, []string{}))
	assert.Equal(t, ErrUsage, (addCmd{}).Run(ctx, cfg, []string{"video", "x", "y"}))
	assert.Equal(t, ErrUsage, (addCmd{}).Run(ctx, cfg, []string{"-nope", "link"}))

	// пустой заголовок отклоняется сервисом, запись не создаётся
	assert.Error(t, (addCmd{}).Run(ctx, cfg, []string{"link", "   ", "https://x"}))
	// файл разрешён только документам
	assert.Error(t, (addCmd{}).Run(ctx, cfg, []string{"-file", notes, "code", "snippet"}))
	assert.Len(t, resourcesOf(t, cfg), 3)
}

func TestListAndSearch_Run(t *testing.T) {
	ctx := context.Background()
	cfg := withTempConfig(t)

	out := withStdoutCapture(t, func() { require.NoError(t, (listCmd{}).Run(ctx, cfg, nil)) })
	assert.Contains(t, out, "No resources")
	assert.Contains(t, out, "Counts: link=0 code=0 document=0")

	require.NoError(t, (addCmd{}).Run(ctx, cfg, []string{"code", "Git stash", "git stash pop"}))
	require.NoError(t, (addCmd{}).Run(ctx, cfg, []string{"code", "Docker", "docker ps"}))
	require.NoError(t, (addCmd{}).Run(ctx, cfg, []string{"link", "GitHub", "https://github.com"}))

	out = withStdoutCapture(t, func() { require.NoError(t, (listCmd{}).Run(ctx, cfg, []string{"code"})) })
	assert.Contains(t, out, "Total: 2")
	assert.Contains(t, out, "Counts: link=1 code=2 document=0")

	out = withStdoutCapture(t, func() { require.NoError(t, (searchCmd{}).Run(ctx, cfg, []string{"code", "GIT"})) })
	assert.Contains(t, out, "Git stash")
	assert.NotContains(t, out, "Docker")
	assert.NotContains(t, out, "GitHub")
	assert.Contains(t, out, "Total: 1")

	assert.Equal(t, ErrUsage, (searchCmd{}).Run(ctx, cfg, nil))
	assert.Equal(t, ErrUsage, (listCmd{}).Run(ctx, cfg, []string{"bogus"}))
}

func TestRemoveAndDownload_Run(t *testing.T) {
	ctx := context.Background()
	cfg := withTempConfig(t)

	notes := writeTempFile(t, "notes.txt", "line one\nline two")
	require.NoError(t, (addCmd{}).Run(ctx, cfg, []string{"-file", notes, "document", "Notes"}))
	id := resourcesOf(t, cfg)[0].ID

	dest := t.TempDir()
	out := withStdoutCapture(t, func() { require.NoError(t, (downloadCmd{}).Run(ctx, cfg, []string{id, dest})) })
	assert.Contains(t, out, "text/plain")
	got, err := os.ReadFile(filepath.Join(dest, "notes.txt"))
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", string(got))

	// повторное скачивание в тот же каталог не перезаписывает файл
	assert.Error(t, (downloadCmd{}).Run(ctx, cfg, []string{id, dest}))

	out = withStdoutCapture(t, func() { require.NoError(t, (removeCmd{}).Run(ctx, cfg, []string{id})) })
	assert.Contains(t, out, "Removed: "+id)
	assert.Empty(t, resourcesOf(t, cfg))

	// удаление и скачивание отсутствующего id не ошибка
	out = withStdoutCapture(t, func() { require.NoError(t, (removeCmd{}).Run(ctx, cfg, []string{id})) })
	assert.Contains(t, out, "Nothing to remove")
	out = withStdoutCapture(t, func() { require.NoError(t, (downloadCmd{}).Run(ctx, cfg, []string{id})) })
	assert.Contains(t, out, "Nothing to download")

	assert.Equal(t, ErrUsage, (removeCmd{}).Run(ctx, cfg, nil))
}

func TestView_Run(t *testing.T) {
	ctx := context.Background()
	cfg := withTempConfig(t)

	notes := writeTempFile(t, "notes.md", "# Heading\n\nbody")
	require.NoError(t, (addCmd{}).Run(ctx, cfg, []string{"-file", notes, "document", "Notes"}))
	require.NoError(t, (addCmd{}).Run(ctx, cfg, []string{"link", "Site", "https://example.com"}))
	list := resourcesOf(t, cfg)

	out := withStdoutCapture(t, func() { require.NoError(t, (viewCmd{}).Run(ctx, cfg, []string{list[1].ID})) })
	assert.Contains(t, out, "# Heading")
	assert.Contains(t, out, "File: notes.md (text")

	out = withStdoutCapture(t, func() { require.NoError(t, (viewCmd{}).Run(ctx, cfg, []string{list[0].ID})) })
	assert.Contains(t, out, "No file to preview")

	assert.Error(t, (viewCmd{}).Run(ctx, cfg, []string{"missing"}))
	assert.Equal(t, ErrUsage, (viewCmd{}).Run(ctx, cfg, []string{list[0].ID, "two"}))
}

func TestCheckAndPrune_Run(t *testing.T) {
	ctx := context.Background()
	cfg := withTempConfig(t)
	require.NoError(t, (addCmd{}).Run(ctx, cfg, []string{"link", "Site", "https://example.com"}))

	out := withStdoutCapture(t, func() { require.NoError(t, (checkCmd{}).Run(ctx, cfg, nil)) })
	assert.Contains(t, out, "Vault is consistent")
	assert.Contains(t, out, "Storage: ")
	assert.Contains(t, out, "of 5.0 MiB used")

	out = withStdoutCapture(t, func() { require.NoError(t, (pruneCmd{}).Run(ctx, cfg, nil)) })
	assert.Contains(t, out, "Pruned: 0")

	assert.Equal(t, ErrUsage, (checkCmd{}).Run(ctx, cfg, []string{"x"}))
}

func TestAttendance_Run(t *testing.T) {
	ctx := context.Background()
	out := withStdoutCapture(t, func() {
		require.NoError(t, (attendanceCmd{}).Run(ctx, &config.Config{}, []string{"120", "95", "75"}))
	})
	assert.Contains(t, out, "Current attendance: 79.17%")
	assert.Contains(t, out, "Can skip: 6")
	assert.Contains(t, out, "Need to attend: 0")
	assert.Contains(t, out, "Status: warning")

	out = withStdoutCapture(t, func() {
		require.NoError(t, (attendanceCmd{}).Run(ctx, &config.Config{}, []string{"100", "60"}))
	})
	assert.Contains(t, out, "Need to attend: 60")
	assert.Contains(t, out, "Status: danger")

	out = withStdoutCapture(t, func() {
		require.NoError(t, (attendanceCmd{}).Run(ctx, &config.Config{}, []string{"10", "9", "100"}))
	})
	assert.Contains(t, out, "can no longer be met")

	assert.Error(t, (attendanceCmd{}).Run(ctx, &config.Config{}, []string{"10", "11"}))
	assert.Error(t, (attendanceCmd{}).Run(ctx, &config.Config{}, []string{"ten", "1"}))
	assert.Equal(t, ErrUsage, (attendanceCmd{}).Run(ctx, &config.Config{}, []string{"10"}))
}

func TestSummaryAndAsk_Run(t *testing.T) {
	ctx := context.Background()
	cfg := withTempConfig(t)
	require.NoError(t, (addCmd{}).Run(ctx, cfg, []string{"-desc", "Week 3 slides", "code", "Slides", "x := 1"}))
	id := resourcesOf(t, cfg)[0].ID

	out := withStdoutCapture(t, func() { require.NoError(t, (summaryCmd{}).Run(ctx, cfg, []string{id})) })
	assert.Contains(t, out, "Document Summary")
	assert.Contains(t, out, "Week 3 slides")
	assert.Contains(t, out, "Content Type: Text")

	out = withStdoutCapture(t, func() {
		require.NoError(t, (askCmd{}).Run(ctx, cfg, []string{id, "what", "is", "x?"}))
	})
	assert.Contains(t, out, "You: what is x?")
	assert.Contains(t, out, `I understand your question about "what is x?"`)

	assert.Error(t, (summaryCmd{}).Run(ctx, cfg, []string{"missing"}))
	assert.Equal(t, ErrUsage, (askCmd{}).Run(ctx, cfg, []string{id}))
	assert.Equal(t, ErrUsage, (askCmd{}).Run(ctx, cfg, []string{id, "  "}))
}
