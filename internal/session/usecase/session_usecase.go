package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	cryptoService "github.com/radarone/vault/internal/crypto/service"
	"github.com/radarone/vault/internal/database"
	apperrors "github.com/radarone/vault/internal/errors"
	"github.com/radarone/vault/internal/session/domain"
)

type sessionUseCase struct {
	txManager database.TxManager
	repo      SessionRepository
	cipher    cryptoService.FieldCipher
	config    Config
	now       func() time.Time
}

// NewSessionUseCase creates a new SessionUseCase.
func NewSessionUseCase(
	txManager database.TxManager,
	repo SessionRepository,
	cipher cryptoService.FieldCipher,
	config Config,
) SessionUseCase {
	return &sessionUseCase{
		txManager: txManager,
		repo:      repo,
		cipher:    cipher,
		config:    config,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Upload validates, encrypts and upserts the storage state of (userID, site).
func (s *sessionUseCase) Upload(ctx context.Context, input domain.UploadInput) (*domain.UploadResult, error) {
	site, err := domain.LookupSite(input.Site)
	if err != nil {
		return nil, err
	}

	canonical, err := domain.NormalizeStorageState(input.StorageState)
	if err != nil {
		return nil, err
	}
	if s.config.MaxStateBytes > 0 && len(canonical) > s.config.MaxStateBytes {
		return nil, domain.ErrStorageStateTooLarge
	}

	state, err := domain.ParseStorageState(canonical)
	if err != nil {
		return nil, err
	}

	now := s.now()
	expiresAt := state.ExpiresAtTime()
	if expiresAt != nil && !expiresAt.After(now) {
		return nil, &domain.StorageStateError{Reasons: []string{"expiresAt: must be in the future"}}
	}
	if expiresAt == nil && s.config.DefaultTTL > 0 {
		t := now.Add(s.config.DefaultTTL)
		expiresAt = &t
	}

	encrypted, err := cryptoService.SealString(s.cipher, canonical)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to encrypt session state")
	}

	session := &domain.Session{
		ID:            uuid.Must(uuid.NewV7()),
		UserID:        input.UserID,
		Site:          site.Key,
		Domain:        site.Domain(),
		EncryptedBlob: encrypted,
		Status:        domain.StatusActive,
		Meta:          state.Meta(),
		AccountLabel:  optionalString(input.AccountLabel),
		ExpiresAt:     expiresAt,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = s.txManager.WithTx(ctx, func(ctx context.Context) error {
		return s.repo.Upsert(ctx, session)
	})
	if err != nil {
		return nil, err
	}

	return &domain.UploadResult{
		Success:   true,
		SessionID: session.ID,
		Message:   fmt.Sprintf("%s session saved", site.DisplayName),
		Meta:      session.Meta,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// GetStatus returns the status view of (userID, site).
func (s *sessionUseCase) GetStatus(ctx context.Context, userID, siteKey string) (*domain.StatusView, error) {
	site, err := domain.LookupSite(siteKey)
	if err != nil {
		return nil, err
	}

	session, err := s.repo.GetByUserAndSite(ctx, userID, site.Key)
	if err != nil {
		if apperrors.Is(err, domain.ErrSessionNotFound) {
			return domain.NotConnectedView(site), nil
		}
		return nil, err
	}

	return domain.NewStatusView(site, session, s.now()), nil
}

// GetAll returns the status views of every stored session of userID.
func (s *sessionUseCase) GetAll(ctx context.Context, userID string) ([]*domain.StatusView, error) {
	sessions, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	views := make([]*domain.StatusView, 0, len(sessions))
	for _, session := range sessions {
		site, err := domain.LookupSite(string(session.Site))
		if err != nil {
			// Site removed from the registry after the upload.
			site = domain.Site{
				Key:         session.Site,
				DisplayName: string(session.Site),
				Domains:     []string{session.Domain},
			}
		}
		views = append(views, domain.NewStatusView(site, session, now))
	}
	return views, nil
}

// Delete removes the session of (userID, site). A missing session returns false, not an error.
func (s *sessionUseCase) Delete(ctx context.Context, userID, siteKey string) (bool, error) {
	site, err := domain.LookupSite(siteKey)
	if err != nil {
		return false, err
	}
	return s.repo.DeleteByUserAndSite(ctx, userID, site.Key)
}

// Validate returns the current status of (userID, site) with its message.
func (s *sessionUseCase) Validate(
	ctx context.Context,
	userID, siteKey string,
) (*domain.ValidationResult, error) {
	view, err := s.GetStatus(ctx, userID, siteKey)
	if err != nil {
		return nil, err
	}
	return &domain.ValidationResult{
		Status:  view.Status,
		Message: view.Status.Message(),
	}, nil
}

// OpenForReplay decrypts the session of (userID, site) when it is effectively ACTIVE.
func (s *sessionUseCase) OpenForReplay(
	ctx context.Context,
	userID, siteKey string,
) (*domain.ReplaySession, error) {
	site, err := domain.LookupSite(siteKey)
	if err != nil {
		return nil, err
	}

	session, err := s.repo.GetByUserAndSite(ctx, userID, site.Key)
	if err != nil {
		return nil, err
	}

	if session.EffectiveStatus(s.now()) != domain.StatusActive {
		return nil, domain.ErrSessionNotActive
	}

	state, err := cryptoService.OpenString(s.cipher, session.EncryptedBlob)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to decrypt session state")
	}

	return &domain.ReplaySession{
		SessionID:    session.ID,
		UserID:       session.UserID,
		Site:         session.Site,
		Domain:       session.Domain,
		StorageState: state,
		ExpiresAt:    session.ExpiresAt,
	}, nil
}

// MarkNeedsReauth moves an ACTIVE session to NEEDS_REAUTH. Repeating it only refreshes the
// error timestamp and reason.
func (s *sessionUseCase) MarkNeedsReauth(ctx context.Context, userID, siteKey, reason string) error {
	site, err := domain.LookupSite(siteKey)
	if err != nil {
		return err
	}

	return s.txManager.WithTx(ctx, func(ctx context.Context) error {
		session, err := s.repo.GetByUserAndSite(ctx, userID, site.Key)
		if err != nil {
			return err
		}

		now := s.now()
		current := session.EffectiveStatus(now)
		if current != domain.StatusNeedsReauth && !current.CanTransitionTo(domain.StatusNeedsReauth) {
			return apperrors.Wrap(
				domain.ErrInvalidStatusTransition,
				fmt.Sprintf("%s to %s", current, domain.StatusNeedsReauth),
			)
		}

		readUpdatedAt := session.UpdatedAt
		session.Status = domain.StatusNeedsReauth
		session.LastErrorAt = &now
		session.LastError = optionalString(reason)
		session.UpdatedAt = now
		return s.repo.UpdateStatus(ctx, session, readUpdatedAt)
	})
}

// MarkUsed records that the scraper replayed the session successfully.
func (s *sessionUseCase) MarkUsed(ctx context.Context, userID, siteKey string) error {
	site, err := domain.LookupSite(siteKey)
	if err != nil {
		return err
	}

	session, err := s.repo.GetByUserAndSite(ctx, userID, site.Key)
	if err != nil {
		return err
	}
	return s.repo.TouchLastUsed(ctx, session.ID, s.now())
}

func optionalString(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
