package list

import (
	"context"
	"log"
)

// Source yields every catalog identifier known to the document store.
type Source interface {
	IDs(ctx context.Context) ([]string, error)
}

// RefStore upserts reference rows keyed by catalog id.  The upsert must be
// idempotent so the job can be re-run at any time.
type RefStore interface {
	Upsert(ctx context.Context, catalogID string) error
}

// SyncReport summarizes one sync run.
type SyncReport struct {
	Total    int `json:"total"`
	Upserted int `json:"upserted"`
	Failed   int `json:"failed"`
}

// Syncer copies catalog identifiers from the document store into the
// relational reference table so foreign keys on the tracking tables
// resolve.  The two stores are only eventually consistent; re-running the
// job converges them.
type Syncer struct {
	source Source
	refs   RefStore
	kind   string // "anime" or "manga", for log context
}

// NewSyncer returns a Syncer for one catalog kind.
func NewSyncer(source Source, refs RefStore, kind string) *Syncer {
	return &Syncer{source: source, refs: refs, kind: kind}
}

// Sync reads every catalog id and upserts a reference row for each.  A
// failing upsert is logged and counted but does not abort the batch; only
// a failure to read the catalog itself is returned as an error.
func (s *Syncer) Sync(ctx context.Context) (SyncReport, error) {
	ids, err := s.source.IDs(ctx)
	if err != nil {
		return SyncReport{}, err
	}
	rep := SyncReport{Total: len(ids)}
	for _, id := range ids {
		if err := s.refs.Upsert(ctx, id); err != nil {
			log.Printf("sync(%s): upsert failed id=%s: %v", s.kind, id, err)
			rep.Failed++
			continue
		}
		rep.Upserted++
	}
	return rep, nil
}
