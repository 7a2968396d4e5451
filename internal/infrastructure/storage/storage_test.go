package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-api/internal/infrastructure/storage"
)

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"report.pdf":        "report.pdf",
		"my file (1).txt":   "my file _1_.txt",
		"../../etc/passwd":  ".._.._etc_passwd",
		"สัญญา.pdf":         "สัญญา.pdf",
		"café.png":          "caf_.png",
		"a\\b:c*d?.doc":     "a_b_c_d_.doc",
		"quote\"<tag>.html": "quote__tag_.html",
		"tab\there.csv":     "tab\there.csv",
	}
	for in, want := range cases {
		assert.Equal(t, want, storage.SanitizeFilename(in), in)
	}
}

func TestSanitizeFilename_NormalizaNFC(t *testing.T) {
	// "e" + acento combinante se compone en un solo carácter antes de sanear.
	assert.Equal(t, "caf_.png", storage.SanitizeFilename("cafe\u0301.png"))
}

func TestKey_FechaYMilisegundos(t *testing.T) {
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	key := storage.Key(now, "a b.pdf")

	assert.True(t, strings.HasPrefix(key, "2026-02-01/"), key)
	assert.True(t, strings.HasSuffix(key, "_a b.pdf"), key)
	assert.Contains(t, key, "/1769940000000_")
}

func TestLocalStorage_Save(t *testing.T) {
	dir := t.TempDir()
	s, err := storage.NewLocalStorage(dir, "/uploads")
	require.NoError(t, err)

	url, err := s.Save(context.Background(), "2026-02-01/1_a.txt", strings.NewReader("hola"), "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/2026-02-01/1_a.txt", url)

	data, err := os.ReadFile(filepath.Join(dir, "2026-02-01", "1_a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hola", string(data))
}

func TestLocalStorage_Delete(t *testing.T) {
	dir := t.TempDir()
	s, err := storage.NewLocalStorage(dir, "/uploads")
	require.NoError(t, err)
	key := "2026-02-01/1_a.txt"
	_, err = s.Save(context.Background(), key, strings.NewReader("hola"), "text/plain")
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), key))
	_, statErr := os.Stat(filepath.Join(dir, "2026-02-01", "1_a.txt"))
	assert.True(t, os.IsNotExist(statErr))

	assert.NoError(t, s.Delete(context.Background(), key), "borrar dos veces no es error")
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", storage.ContentType("x.PDF"))
	assert.Equal(t, "application/octet-stream", storage.ContentType("x.unknownext"))
}
