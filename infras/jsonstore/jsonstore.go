package jsonstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/riku-k061/travel-backend/config"
	"github.com/riku-k061/travel-backend/infras/otel"
	"github.com/riku-k061/travel-backend/shared/constant"
)

// Store resolves collection names to flat JSON files under the configured
// data directory. One file holds the entire collection for one entity.
type Store struct {
	dataDir string
	otel    otel.Otel
}

func New(cfg *config.Config, ot otel.Otel) *Store {
	return &Store{
		dataDir: cfg.Store.DataDir,
		otel:    ot,
	}
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dataDir, name+".json")
}

// Collection is a typed view over one backing file with whole-collection
// load/replace semantics. There is no locking: concurrent writers race and
// the last full snapshot written wins.
type Collection[T any] struct {
	store *Store
	name  string
}

func NewCollection[T any](store *Store, name string) *Collection[T] {
	return &Collection[T]{
		store: store,
		name:  name,
	}
}

func (c *Collection[T]) Name() string {
	return c.name
}

// Load reads the entire backing collection. A missing or corrupt file
// degrades to an empty collection rather than an error, so first-run and
// damaged-storage scenarios behave as "no records".
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	_, scope := c.store.otel.NewScope(ctx, constant.OtelStoreScopeName, fmt.Sprintf("%s.%s.Load", constant.OtelStoreScopeName, c.name))
	defer scope.End()

	raw, err := os.ReadFile(c.store.path(c.name))
	if err != nil {
		if os.IsNotExist(err) {
			return []T{}, nil
		}

		scope.TraceError(err)

		return nil, fmt.Errorf("failed to read collection %s: %w", c.name, err)
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Warn().Err(err).Str("collection", c.name).Msg("collection file is corrupt, treating as empty")

		return []T{}, nil
	}

	if items == nil {
		items = []T{}
	}

	return items, nil
}

// Replace writes the full collection back to its backing file, creating the
// data directory on first use. There is no partial-write recovery: a failed
// write leaves the previous file contents in place and the in-memory change
// is lost.
func (c *Collection[T]) Replace(ctx context.Context, items []T) (err error) {
	_, scope := c.store.otel.NewScope(ctx, constant.OtelStoreScopeName, fmt.Sprintf("%s.%s.Replace", constant.OtelStoreScopeName, c.name))
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = os.MkdirAll(c.store.dataDir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	if items == nil {
		items = []T{}
	}

	raw, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal collection %s: %w", c.name, err)
	}

	if err = os.WriteFile(c.store.path(c.name), raw, 0o644); err != nil {
		return fmt.Errorf("failed to write collection %s: %w", c.name, err)
	}

	return nil
}
