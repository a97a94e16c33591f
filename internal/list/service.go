// Package list implements the per-user tracking list: given a catalog
// item and a desired status it creates, updates or deletes the user's
// entry for that item, keeping at most one entry per (user, item) pair.
package list

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// StatusDrop is the sentinel status meaning "remove this item from my
// list".  Any other status is stored as-is; the set is open-ended
// ("Watching", "Completed", "Planning", ...).
const StatusDrop = "Drop"

// ErrValidation marks a rejected input (empty status, missing id, nil
// genres).  Handlers translate it into a 400 response.
var ErrValidation = errors.New("invalid input")

// Item is the catalog item payload a client sends alongside a status.
// The id originates in the catalog store; the remaining fields are a
// snapshot frozen into the entry on first insertion.
type Item struct {
	ID       string
	Title    string
	Synopsis string
	Image    string
	Genres   []string
}

// Entry is one user's status record for one catalog item.
type Entry struct {
	ID        uint64 `json:"id"`
	UserID    uint64 `json:"userId"`
	CatalogID string `json:"catalogId"`
	Title     string `json:"title"`
	Synopsis  string `json:"synopsis"`
	Image     string `json:"image"`
	Genres    string `json:"genres"`
	Status    string `json:"status"`
}

// Store is the persistence contract the service runs against.  Upsert must
// be atomic per (userID, item.ID): insert the full snapshot when no row
// exists, otherwise update only the status and leave the snapshot columns
// untouched.  The bool reports whether a row was created.
type Store interface {
	Upsert(ctx context.Context, userID uint64, item Item, status string) (Entry, bool, error)
	Remove(ctx context.Context, userID uint64, catalogID string) (bool, error)
	ListByUser(ctx context.Context, userID uint64) ([]Entry, error)
}

// Service is the reconciliation engine.  It trusts userID (the auth
// middleware verified it) and owns only the create/update/delete decision.
type Service struct {
	store Store
}

// NewService returns a Service over the given store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// SetStatus applies a desired status for (userID, item).  When the status
// is StatusDrop the entry is removed and the returned bool reports whether
// a row actually existed; a missing row is a valid negative outcome, not
// an error.  Otherwise the entry is created or its status updated, and the
// resulting entry is returned.  Repeated identical calls are idempotent.
func (s *Service) SetStatus(ctx context.Context, userID uint64, item Item, status string) (*Entry, bool, error) {
	if strings.TrimSpace(status) == "" {
		return nil, false, fmt.Errorf("%w: status is required", ErrValidation)
	}
	if item.ID == "" {
		return nil, false, fmt.Errorf("%w: item id is required", ErrValidation)
	}
	if status == StatusDrop {
		removed, err := s.store.Remove(ctx, userID, item.ID)
		return nil, removed, err
	}
	if item.Genres == nil {
		return nil, false, fmt.Errorf("%w: genres list is required", ErrValidation)
	}
	entry, _, err := s.store.Upsert(ctx, userID, item, status)
	if err != nil {
		return nil, false, err
	}
	return &entry, false, nil
}

// Remove deletes the entry for (userID, catalogID) if present.  Absence is
// success-with-false.
func (s *Service) Remove(ctx context.Context, userID uint64, catalogID string) (bool, error) {
	return s.store.Remove(ctx, userID, catalogID)
}

// List returns all of the user's entries; storage order, possibly empty.
func (s *Service) List(ctx context.Context, userID uint64) ([]Entry, error) {
	return s.store.ListByUser(ctx, userID)
}

// JoinGenres renders a genre list the way entries store it: a single
// string joined with ", ".
func JoinGenres(genres []string) string {
	return strings.Join(genres, ", ")
}
