package summaryrepo

import (
	"context"
	"sort"
	"sync"

	"github.com/securian/medsummary/internal/domain/summary"
)

// MemoryRepository is an in-memory summary.Repository used for tests and for
// running without a database.
type MemoryRepository struct {
	mu      sync.RWMutex
	records []summary.StoredSummary
}

// NewMemoryRepository constructs the repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Insert implements summary.Repository.
func (r *MemoryRepository) Insert(_ context.Context, record summary.StoredSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	record.References = append([]summary.Reference(nil), record.References...)
	r.records = append(r.records, record)
	return nil
}

// ListRecent implements summary.Repository.
func (r *MemoryRepository) ListRecent(_ context.Context, limit int) ([]summary.StoredSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := append([]summary.StoredSummary(nil), r.records...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

var _ summary.Repository = (*MemoryRepository)(nil)
