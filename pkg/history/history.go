// Package history records past generation runs.
//
// Every run started from the CLI or the HTTP API can be saved as a
// [Record]: its id, the options that produced it, summary counts and the
// artifacts written. Because generation is deterministic, a record is
// enough to reproduce its output exactly.
//
// Two backends implement [Store]:
//
//   - [FileStore]: one JSON file per run under a local directory (CLI)
//   - [MongoStore]: a MongoDB collection (shared server deployments)
//
// # Usage
//
//	store, err := history.NewFileStore("")  // ~/.local/share/regiongen/runs
//	rec := history.NewRecord(opts, result)
//	if err := store.Save(ctx, rec); err != nil {
//	    return err
//	}
//	recent, err := store.List(ctx, 20)
package history

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/regiongen/pkg/errors"
	"github.com/matzehuels/regiongen/pkg/pipeline"
)

// DefaultLimit is the number of records returned by List when limit <= 0.
const DefaultLimit = 50

// Record describes one finished run.
type Record struct {
	ID        string           `json:"id" bson:"_id"`
	CreatedAt time.Time        `json:"created_at" bson:"created_at"`
	Options   pipeline.Options `json:"options" bson:"options"`
	Hash      string           `json:"hash" bson:"hash"`

	Regions     int           `json:"regions" bson:"regions"`
	Clusters    int           `json:"clusters" bson:"clusters"`
	SpinePoints int           `json:"spine_points" bson:"spine_points"`
	Duration    time.Duration `json:"duration" bson:"duration"`
	Cached      bool          `json:"cached,omitempty" bson:"cached,omitempty"`

	// Artifacts lists the files written, or the formats served.
	Artifacts []string `json:"artifacts,omitempty" bson:"artifacts,omitempty"`
}

// NewRecord builds a record for a run with a fresh id.
func NewRecord(opts pipeline.Options, result *pipeline.Result) *Record {
	rec := &Record{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Options:   opts,
	}
	if result != nil {
		rec.Hash = result.Hash
		rec.Regions = result.Stats.RegionCount
		rec.Clusters = result.Stats.ClusterCount
		rec.SpinePoints = result.Stats.SpinePoints
		rec.Duration = result.Stats.Total()
		rec.Cached = result.CacheInfo.RenderHit
	}
	return rec
}

// Store is the interface for run history backends.
type Store interface {
	// Save stores rec, replacing any record with the same id.
	Save(ctx context.Context, rec *Record) error

	// Get returns the record with the given id, or a NOT_FOUND error.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns up to limit records, newest first.
	List(ctx context.Context, limit int) ([]*Record, error)

	// Close releases backend resources.
	Close() error
}

// ValidateID rejects ids that are not UUIDs. Ids are used as file names
// and document keys, so anything else is refused before touching storage.
func ValidateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return errors.New(errors.ErrCodeInvalidArgument, "invalid run id %q", id)
	}
	return nil
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "run %s not found", id)
}
