package summaryrepo

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/securian/medsummary/internal/domain/summary"
)

func TestMemoryRepositoryListsNewestFirst(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()
	base := time.Now().UTC()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Insert(ctx, summary.StoredSummary{
			ID:        uuid.New(),
			Answer:    "answer",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	records, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.True(t, records[0].CreatedAt.After(records[1].CreatedAt))
}

func TestMemoryRepositoryDoesNotMutateInput(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	references := []summary.Reference{{ReferenceNumber: 1, Label: "Guide"}}
	record := summary.StoredSummary{
		ID:           uuid.New(),
		Answer:       "ok",
		References:   references,
		ResponseTime: 12,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, repo.Insert(ctx, record))

	references[0].Label = "changed"

	stored, err := repo.ListRecent(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "Guide", stored[0].References[0].Label)
	require.Equal(t, "ok", record.Answer)
	require.Equal(t, int64(12), record.ResponseTime)
}
