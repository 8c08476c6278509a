package upload_test

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invenhq/inventory-api/internal/apperr"
	"github.com/invenhq/inventory-api/internal/storage/upload"
)

func formFile(t *testing.T, filename string, content []byte) (multipart.File, *multipart.FileHeader) {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	file, header, err := req.FormFile("image")
	require.NoError(t, err)
	t.Cleanup(func() { file.Close() })

	return file, header
}

func TestStoreSave(t *testing.T) {
	dir := t.TempDir()
	store, err := upload.NewStore(dir, 1024)
	require.NoError(t, err)

	t.Run("Should save an accepted image and return its public path", func(t *testing.T) {
		file, header := formFile(t, "photo.PNG", []byte("png bytes"))

		url, err := store.Save(file, header)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(url, "/uploads/image-"))
		assert.True(t, strings.HasSuffix(url, ".png"))

		saved, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
		require.NoError(t, err)
		assert.Equal(t, []byte("png bytes"), saved)
	})

	t.Run("Should generate distinct names for identical uploads", func(t *testing.T) {
		f1, h1 := formFile(t, "a.jpg", []byte("x"))
		f2, h2 := formFile(t, "a.jpg", []byte("x"))

		u1, err := store.Save(f1, h1)
		require.NoError(t, err)
		u2, err := store.Save(f2, h2)
		require.NoError(t, err)

		assert.NotEqual(t, u1, u2)
	})

	t.Run("Should reject a disallowed extension", func(t *testing.T) {
		file, header := formFile(t, "notes.txt", []byte("hello"))

		_, err := store.Save(file, header)
		assert.ErrorIs(t, err, apperr.InvalidImageErr)
	})

	t.Run("Should reject an oversized file", func(t *testing.T) {
		file, header := formFile(t, "big.jpg", bytes.Repeat([]byte("a"), 2048))

		_, err := store.Save(file, header)
		assert.ErrorIs(t, err, apperr.InvalidImageErr)
	})
}
