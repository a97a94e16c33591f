package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartImage(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestUploadImage_SavesFile(t *testing.T) {
	dir := t.TempDir()
	h := NewCatalogHandler(nil, "anime", dir)

	body, ctype := multipartImage(t, "image", "doremi.jpg", []byte("jpeg-bytes"))
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/admin/anime-image/upload", body)
	req.Header.Set(echo.HeaderContentType, ctype)
	rec := httptest.NewRecorder()
	require.NoError(t, h.UploadImage(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/uploads/animes/doremi.jpg")

	saved, err := os.ReadFile(filepath.Join(dir, "animes", "doremi.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), saved)
}

func TestUploadImage_StripsClientPath(t *testing.T) {
	dir := t.TempDir()
	h := NewCatalogHandler(nil, "manga", dir)

	body, ctype := multipartImage(t, "image", "../../evil.jpg", []byte("x"))
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/admin/manga-image/upload", body)
	req.Header.Set(echo.HeaderContentType, ctype)
	rec := httptest.NewRecorder()
	require.NoError(t, h.UploadImage(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusOK, rec.Code)
	_, err := os.Stat(filepath.Join(dir, "mangas", "evil.jpg"))
	assert.NoError(t, err)
}

func TestUploadImage_MissingFile(t *testing.T) {
	h := NewCatalogHandler(nil, "anime", t.TempDir())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/admin/anime-image/upload", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.UploadImage(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAddItem_RejectsEmptyBody(t *testing.T) {
	h := NewCatalogHandler(nil, "anime", t.TempDir())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/admin/new-anime/upload", bytes.NewReader([]byte(`{}`)))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, h.AddItem(e.NewContext(req, rec)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
