package usecase

import (
	"context"
	"time"

	"github.com/radarone/vault/internal/metrics"
	"github.com/radarone/vault/internal/nationalid/domain"
)

// nationalIDUseCaseWithMetrics decorates NationalIDUseCase with metrics instrumentation.
type nationalIDUseCaseWithMetrics struct {
	next    NationalIDUseCase
	metrics metrics.BusinessMetrics
}

// NewNationalIDUseCaseWithMetrics wraps a NationalIDUseCase with metrics recording.
func NewNationalIDUseCaseWithMetrics(useCase NationalIDUseCase, m metrics.BusinessMetrics) NationalIDUseCase {
	return &nationalIDUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (n *nationalIDUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.StatusOf(err)
	n.metrics.RecordOperation(ctx, "national_id", operation, status)
	n.metrics.RecordDuration(ctx, "national_id", operation, time.Since(start), status)
}

// Register records metrics for national id registration.
func (n *nationalIDUseCaseWithMetrics) Register(
	ctx context.Context,
	userID, nationalID string,
) (*domain.NationalIDRecord, error) {
	start := time.Now()
	record, err := n.next.Register(ctx, userID, nationalID)
	n.record(ctx, "register", start, err)
	return record, err
}

// Get records metrics for national id reads.
func (n *nationalIDUseCaseWithMetrics) Get(ctx context.Context, userID string) (*domain.NationalIDRecord, error) {
	start := time.Now()
	record, err := n.next.Get(ctx, userID)
	n.record(ctx, "get", start, err)
	return record, err
}

// Reveal records metrics for national id decryption.
func (n *nationalIDUseCaseWithMetrics) Reveal(ctx context.Context, userID string) (string, error) {
	start := time.Now()
	plaintext, err := n.next.Reveal(ctx, userID)
	n.record(ctx, "reveal", start, err)
	return plaintext, err
}

// IsRegistered records metrics for hash lookups.
func (n *nationalIDUseCaseWithMetrics) IsRegistered(ctx context.Context, nationalID string) (bool, error) {
	start := time.Now()
	registered, err := n.next.IsRegistered(ctx, nationalID)
	n.record(ctx, "is_registered", start, err)
	return registered, err
}
