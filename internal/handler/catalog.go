package handler

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/tsutsun/magicaltsutsunlist/internal/catalog"
)

// CatalogHandler serves one catalog collection (animes or mangas): the
// authenticated dump plus the admin insert and image-upload endpoints.
type CatalogHandler struct {
	Store     *catalog.Store
	kind      string // "anime" or "manga"
	uploadDir string
}

// NewCatalogHandler binds a handler to one collection.  Uploaded images
// land under uploadDir/<kind>s.
func NewCatalogHandler(store *catalog.Store, kind, uploadDir string) *CatalogHandler {
	return &CatalogHandler{Store: store, kind: kind, uploadDir: uploadDir}
}

// All dumps the whole collection.  Catalogs are small; clients filter.
func (h *CatalogHandler) All(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	items, err := h.Store.All(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
	return c.JSON(http.StatusOK, items)
}

// AddItem inserts a new catalog document.  The shape is open: whatever
// metadata the admin frontend collects is stored as-is.
func (h *CatalogHandler) AddItem(c echo.Context) error {
	var doc bson.M
	if err := c.Bind(&doc); err != nil || len(doc) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	id, err := h.Store.Insert(ctx, doc)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error saving the " + h.kind})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": h.kind + " added successfully",
		"id":      id,
	})
}

// UploadImage stores a multipart "image" file under the kind's upload
// directory and returns the public path the frontend references.
func (h *CatalogHandler) UploadImage(c echo.Context) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "image file is required"})
	}

	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error uploading the image"})
	}
	defer src.Close()

	// Base strips any path the client smuggled into the filename.
	name := filepath.Base(fh.Filename)
	dir := filepath.Join(h.uploadDir, h.kind+"s")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error uploading the image"})
	}

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error uploading the image"})
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error uploading the image"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":  "image uploaded successfully",
		"filePath": "/uploads/" + h.kind + "s/" + name,
	})
}
