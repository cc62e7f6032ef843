package usecase

import (
	"context"
	"time"

	"github.com/radarone/vault/internal/metrics"
	"github.com/radarone/vault/internal/session/domain"
)

// sessionUseCaseWithMetrics decorates SessionUseCase with metrics instrumentation.
type sessionUseCaseWithMetrics struct {
	next    SessionUseCase
	metrics metrics.BusinessMetrics
}

// NewSessionUseCaseWithMetrics wraps a SessionUseCase with metrics recording.
func NewSessionUseCaseWithMetrics(useCase SessionUseCase, m metrics.BusinessMetrics) SessionUseCase {
	return &sessionUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (s *sessionUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.StatusOf(err)
	s.metrics.RecordOperation(ctx, "session", operation, status)
	s.metrics.RecordDuration(ctx, "session", operation, time.Since(start), status)
}

// Upload records metrics for session uploads.
func (s *sessionUseCaseWithMetrics) Upload(ctx context.Context, input domain.UploadInput) (*domain.UploadResult, error) {
	start := time.Now()
	result, err := s.next.Upload(ctx, input)
	s.record(ctx, "upload", start, err)
	return result, err
}

// GetStatus records metrics for status reads.
func (s *sessionUseCaseWithMetrics) GetStatus(ctx context.Context, userID, site string) (*domain.StatusView, error) {
	start := time.Now()
	view, err := s.next.GetStatus(ctx, userID, site)
	s.record(ctx, "get_status", start, err)
	return view, err
}

// GetAll records metrics for session listing.
func (s *sessionUseCaseWithMetrics) GetAll(ctx context.Context, userID string) ([]*domain.StatusView, error) {
	start := time.Now()
	views, err := s.next.GetAll(ctx, userID)
	s.record(ctx, "get_all", start, err)
	return views, err
}

// Delete records metrics for session deletion.
func (s *sessionUseCaseWithMetrics) Delete(ctx context.Context, userID, site string) (bool, error) {
	start := time.Now()
	deleted, err := s.next.Delete(ctx, userID, site)
	s.record(ctx, "delete", start, err)
	return deleted, err
}

// Validate records metrics for session validation.
func (s *sessionUseCaseWithMetrics) Validate(
	ctx context.Context,
	userID, site string,
) (*domain.ValidationResult, error) {
	start := time.Now()
	result, err := s.next.Validate(ctx, userID, site)
	s.record(ctx, "validate", start, err)
	return result, err
}

// OpenForReplay records metrics for session decryption.
func (s *sessionUseCaseWithMetrics) OpenForReplay(
	ctx context.Context,
	userID, site string,
) (*domain.ReplaySession, error) {
	start := time.Now()
	replay, err := s.next.OpenForReplay(ctx, userID, site)
	s.record(ctx, "open_for_replay", start, err)
	return replay, err
}

// MarkNeedsReauth records metrics for reauthentication reports.
func (s *sessionUseCaseWithMetrics) MarkNeedsReauth(ctx context.Context, userID, site, reason string) error {
	start := time.Now()
	err := s.next.MarkNeedsReauth(ctx, userID, site, reason)
	s.record(ctx, "mark_needs_reauth", start, err)
	return err
}

// MarkUsed records metrics for replay reports.
func (s *sessionUseCaseWithMetrics) MarkUsed(ctx context.Context, userID, site string) error {
	start := time.Now()
	err := s.next.MarkUsed(ctx, userID, site)
	s.record(ctx, "mark_used", start, err)
	return err
}
