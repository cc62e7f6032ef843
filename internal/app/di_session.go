package app

import (
	"fmt"

	sessionHTTP "github.com/radarone/vault/internal/session/http"
	sessionRepository "github.com/radarone/vault/internal/session/repository"
	sessionUseCase "github.com/radarone/vault/internal/session/usecase"
)

// SessionRepository returns the external session repository for the configured driver.
func (c *Container) SessionRepository() (sessionUseCase.SessionRepository, error) {
	c.sessionRepositoryInit.Do(func() {
		var err error
		c.sessionRepository, err = c.initSessionRepository()
		c.setInitError("sessionRepository", err)
	})
	if err := c.initError("sessionRepository"); err != nil {
		return nil, err
	}
	return c.sessionRepository, nil
}

// SessionUseCase returns the session use case wrapped with business metrics.
func (c *Container) SessionUseCase() (sessionUseCase.SessionUseCase, error) {
	c.sessionUseCaseInit.Do(func() {
		var err error
		c.sessionUseCase, err = c.initSessionUseCase()
		c.setInitError("sessionUseCase", err)
	})
	if err := c.initError("sessionUseCase"); err != nil {
		return nil, err
	}
	return c.sessionUseCase, nil
}

// SessionHandler returns the session HTTP handler.
func (c *Container) SessionHandler() (*sessionHTTP.SessionHandler, error) {
	c.sessionHandlerInit.Do(func() {
		var err error
		c.sessionHandler, err = c.initSessionHandler()
		c.setInitError("sessionHandler", err)
	})
	if err := c.initError("sessionHandler"); err != nil {
		return nil, err
	}
	return c.sessionHandler, nil
}

func (c *Container) initSessionRepository() (sessionUseCase.SessionRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for session repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return sessionRepository.NewMySQLSessionRepository(db), nil
	case "postgres":
		return sessionRepository.NewPostgreSQLSessionRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initSessionUseCase() (sessionUseCase.SessionUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for session use case: %w", err)
	}

	repo, err := c.SessionRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get session repository for session use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for session use case: %w", err)
	}

	useCase := sessionUseCase.NewSessionUseCase(txManager, repo, c.FieldCipher(), sessionUseCase.Config{
		DefaultTTL:    c.config.SessionDefaultTTL,
		MaxStateBytes: c.config.SessionMaxStateBytes,
	})
	return sessionUseCase.NewSessionUseCaseWithMetrics(useCase, businessMetrics), nil
}

func (c *Container) initSessionHandler() (*sessionHTTP.SessionHandler, error) {
	useCase, err := c.SessionUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get session use case for handler: %w", err)
	}
	return sessionHTTP.NewSessionHandler(useCase, c.config.SessionMaxStateBytes, c.Logger()), nil
}
