// Package persistence saves and restores the draft roster through a
// storage.Store.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/malexanderboyd/pwr9-draftboard/internal/draft"
	"github.com/malexanderboyd/pwr9-draftboard/internal/storage"
)

const DefaultKey = "fantasyDraftBoard"

// Loader receives a stored snapshot at startup.
type Loader interface {
	LoadSnapshot(ctx context.Context, data []byte) error
}

type SnapshotStore struct {
	store  storage.Store
	key    string
	logger *zap.SugaredLogger
}

func NewSnapshotStore(store storage.Store, key string, logger *zap.SugaredLogger) *SnapshotStore {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &SnapshotStore{store: store, key: key, logger: logger}
}

func (s *SnapshotStore) Key() string {
	return s.key
}

func (s *SnapshotStore) Save(ctx context.Context, snapshot *draft.Snapshot) error {
	if snapshot == nil {
		return errors.New("nil snapshot")
	}
	if snapshot.Picks == nil {
		snapshot.Picks = []draft.Pick{}
	}
	b, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := s.store.Set(ctx, s.key, b); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	s.logger.Debugw("snapshot saved", "key", s.key, "picks", len(snapshot.Picks), "bytes", len(b))
	return nil
}

// Clear deletes the stored snapshot. Clearing an empty store is not an error.
func (s *SnapshotStore) Clear(ctx context.Context) error {
	err := s.store.Delete(ctx, s.key)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	s.logger.Debugw("snapshot cleared", "key", s.key)
	return nil
}

// Load returns the raw snapshot. ok is false when nothing has been saved.
func (s *SnapshotStore) Load(ctx context.Context) (data []byte, ok bool, err error) {
	data, err = s.store.Get(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load snapshot: %w", err)
	}
	return data, true, nil
}

// Restore hands the stored snapshot to l. Unreadable or corrupt data is
// logged and the roster stays empty; it reports whether a snapshot was
// applied.
func (s *SnapshotStore) Restore(ctx context.Context, l Loader) bool {
	data, ok, err := s.Load(ctx)
	if err != nil {
		s.logger.Errorw("failed to read stored draft, starting empty", "key", s.key, "error", err)
		return false
	}
	if !ok {
		s.logger.Infow("no stored draft, starting empty", "key", s.key)
		return false
	}
	if err := l.LoadSnapshot(ctx, data); err != nil {
		s.logger.Warnw("stored draft is unusable, starting empty",
			"key", s.key,
			"code", draft.CodeOf(err),
			"error", err,
		)
		return false
	}
	return true
}
