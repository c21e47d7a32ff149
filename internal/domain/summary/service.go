package summary

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/securian/medsummary/internal/domain/flatten"
	apperrors "github.com/securian/medsummary/pkg/errors"
)

// Service exposes the summarization pipeline.
type Service interface {
	Summarize(ctx context.Context, req Request) (Response, error)
	Recent(ctx context.Context, limit int) ([]StoredSummary, error)
}

// Client performs the upstream summarization call. Implementations return an
// error for transport failures, non-2xx statuses, and non-JSON bodies; the
// service decides how those degrade.
type Client interface {
	CreateSummary(ctx context.Context, token, prompted string) (Result, error)
}

// TokenSource supplies the bearer token for each upstream call.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Repository persists summary records.
type Repository interface {
	Insert(ctx context.Context, record StoredSummary) error
	ListRecent(ctx context.Context, limit int) ([]StoredSummary, error)
}

// Archive keeps a best-effort copy of the raw upstream result.
type Archive interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

const defaultRecentLimit = 10

type service struct {
	client  Client
	tokens  TokenSource
	repo    Repository
	archive Archive
	logger  *slog.Logger
}

// NewService wires the summarization pipeline.
func NewService(client Client, tokens TokenSource, repo Repository, archive Archive, logger *slog.Logger) Service {
	return &service{
		client:  client,
		tokens:  tokens,
		repo:    repo,
		archive: archive,
		logger:  logger.With("component", "summary.service"),
	}
}

func (s *service) Summarize(ctx context.Context, req Request) (Response, error) {
	start := time.Now()

	if len(req.MedicalData) == 0 {
		return Response{}, apperrors.Wrap("invalid_input", "medicalData cannot be empty", nil)
	}
	flattened, err := flatten.Flatten(req.MedicalData)
	if err != nil {
		return Response{}, apperrors.Wrap("invalid_input", "medical record is not valid json", err)
	}

	prompted := BuildPrompt(flattened, time.Now().Year())

	token, err := s.tokens.Token(ctx)
	if err != nil {
		return Response{}, apperrors.Wrap("token_error", "bearer token unavailable", err)
	}

	// A failed upstream call degrades to an empty result with an explicit
	// failed status instead of aborting the request.
	status := StatusCompleted
	result, err := s.client.CreateSummary(ctx, token, prompted)
	if err != nil {
		s.logger.Error("summarization call failed", "patient_id", req.PatientID, "error", err)
		result = Result{}
		status = StatusFailed
	}
	if result.References == nil {
		result.References = []Reference{}
	}

	record := StoredSummary{
		ID:           uuid.New(),
		PatientID:    req.PatientID,
		Answer:       result.Answer,
		References:   result.References,
		ResponseTime: result.ResponseTime,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, record); err != nil {
		return Response{}, apperrors.Wrap("store_error", "failed to persist summary record", err)
	}

	s.archiveResult(ctx, record.ID, result)

	s.logger.Info("summarization completed",
		"summary_id", record.ID.String(),
		"patient_id", req.PatientID,
		"status", string(status),
	)

	return Response{
		SummaryID:    record.ID,
		PatientID:    req.PatientID,
		Answer:       result.Answer,
		References:   result.References,
		ResponseTime: result.ResponseTime,
		ProcessingMs: time.Since(start).Milliseconds(),
		Status:       status,
	}, nil
}

func (s *service) Recent(ctx context.Context, limit int) ([]StoredSummary, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	records, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, apperrors.Wrap("store_error", "failed to list summaries", err)
	}
	return records, nil
}

func (s *service) archiveResult(ctx context.Context, id uuid.UUID, result Result) {
	if s.archive == nil {
		return
	}
	payload, err := json.Marshal(result)
	if err != nil {
		s.logger.Warn("failed to encode result for archive", "summary_id", id.String(), "error", err)
		return
	}
	key := "summaries/" + id.String() + ".json"
	if err := s.archive.Put(ctx, key, payload, "application/json"); err != nil {
		s.logger.Warn("failed to archive raw result", "summary_id", id.String(), "error", err)
	}
}
