//go:build integration

package history

import (
	"context"
	"os"
	"testing"

	"github.com/matzehuels/regiongen/pkg/errors"
	"github.com/matzehuels/regiongen/pkg/pipeline"
)

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("REGIONGEN_MONGO_URI")
	if uri == "" {
		t.Skip("REGIONGEN_MONGO_URI not set")
	}
	ctx := context.Background()

	store, err := NewMongoStore(ctx, MongoConfig{URI: uri, Database: "regiongen_test"})
	if err != nil {
		t.Fatalf("NewMongoStore error: %v", err)
	}
	defer store.Close()
	defer store.coll.Drop(ctx)

	rec := NewRecord(pipeline.Options{Width: 10, Height: 10, Density: 4, Formats: []string{"png"}}, nil)
	if err := store.Save(ctx, rec); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	got, err := store.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Options.Density != 4 || len(got.Options.Formats) != 1 {
		t.Errorf("round-tripped options = %+v", got.Options)
	}

	recs, err := store.List(ctx, 10)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(recs) != 1 || recs[0].ID != rec.ID {
		t.Errorf("List = %v", recs)
	}

	_, err = store.Get(ctx, "6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Get(missing) error = %v", err)
	}
}
