package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tsutsun/magicaltsutsunlist/internal/list"
)

// ListHandler serves one kind of tracking list (anime or manga).  The
// same handler type backs both route families; the constructor fixes the
// kind so requests and responses use the matching body keys.
type ListHandler struct {
	Svc    *list.Service
	Syncer *list.Syncer
	kind   string // "anime" or "manga"
}

// NewAnimeListHandler returns the handler for the anime tracking routes.
func NewAnimeListHandler(svc *list.Service, syncer *list.Syncer) *ListHandler {
	return &ListHandler{Svc: svc, Syncer: syncer, kind: "anime"}
}

// NewMangaListHandler returns the handler for the manga tracking routes.
func NewMangaListHandler(svc *list.Service, syncer *list.Syncer) *ListHandler {
	return &ListHandler{Svc: svc, Syncer: syncer, kind: "manga"}
}

// itemPayload is the catalog snapshot a client sends with a status.  The
// _id key matches the document id the collection endpoints hand out.
type itemPayload struct {
	ID       string   `json:"_id"`
	Title    string   `json:"title"`
	Synopsis string   `json:"synopsis"`
	Image    string   `json:"image"`
	Genres   []string `json:"genres"`
}

// addStatusReq carries either animeData or mangaData depending on which
// route family the request came through.
type addStatusReq struct {
	AnimeData *itemPayload `json:"animeData"`
	MangaData *itemPayload `json:"mangaData"`
	Status    string       `json:"status"`
}

func (h *ListHandler) payload(req addStatusReq) *itemPayload {
	if h.kind == "manga" {
		return req.MangaData
	}
	return req.AnimeData
}

// Add sets the caller's status for one catalog item.  A regular status
// answers 201 with the stored entry; the "Drop" sentinel removes the
// entry instead and answers 200, or 404 when nothing was on the list.
func (h *ListHandler) Add(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req addStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	data := h.payload(req)
	if data == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": h.kind + "Data is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	item := list.Item{
		ID:       data.ID,
		Title:    data.Title,
		Synopsis: data.Synopsis,
		Image:    data.Image,
		Genres:   data.Genres,
	}
	entry, removed, err := h.Svc.SetStatus(ctx, uid, item, req.Status)
	if err != nil {
		if errors.Is(err, list.ErrValidation) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error processing the request"})
	}
	if entry == nil {
		// Drop path: the sentinel asked for a removal.
		if !removed {
			return c.JSON(http.StatusNotFound, echo.Map{"message": h.kind + " not found in the list"})
		}
		return c.JSON(http.StatusOK, echo.Map{"message": h.kind + " removed from the list"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": h.kind + " successfully added/updated",
		h.kind:    entry,
	})
}

// List returns every entry on the caller's list, oldest first.
func (h *ListHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	entries, err := h.Svc.List(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error fetching the list"})
	}
	return c.JSON(http.StatusOK, entries)
}

// Remove deletes the caller's entry for the catalog id in the :id param.
func (h *ListHandler) Remove(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	removed, err := h.Svc.Remove(ctx, uid, c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error deleting " + h.kind})
	}
	if !removed {
		return c.JSON(http.StatusNotFound, echo.Map{"message": h.kind + " not found in the list"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": h.kind + " successfully deleted"})
}

// Sync copies every catalog id into the relational reference table so the
// tracking tables' foreign keys resolve.  Individual upsert failures are
// reported in the body but do not fail the run.
func (h *ListHandler) Sync(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()

	rep, err := h.Syncer.Sync(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "error synchronizing and inserting the " + h.kind + "s"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "data synchronized and inserted",
		"report":  rep,
	})
}
