package app

import (
	"fmt"

	nationalIDHTTP "github.com/radarone/vault/internal/nationalid/http"
	nationalIDRepository "github.com/radarone/vault/internal/nationalid/repository"
	nationalIDService "github.com/radarone/vault/internal/nationalid/service"
	nationalIDUseCase "github.com/radarone/vault/internal/nationalid/usecase"
)

// NationalIDRepository returns the national id repository for the configured driver.
func (c *Container) NationalIDRepository() (nationalIDUseCase.NationalIDRepository, error) {
	c.nationalIDRepositoryInit.Do(func() {
		var err error
		c.nationalIDRepository, err = c.initNationalIDRepository()
		c.setInitError("nationalIDRepository", err)
	})
	if err := c.initError("nationalIDRepository"); err != nil {
		return nil, err
	}
	return c.nationalIDRepository, nil
}

// NationalIDUseCase returns the national id use case wrapped with business metrics.
func (c *Container) NationalIDUseCase() (nationalIDUseCase.NationalIDUseCase, error) {
	c.nationalIDUseCaseInit.Do(func() {
		var err error
		c.nationalIDUseCase, err = c.initNationalIDUseCase()
		c.setInitError("nationalIDUseCase", err)
	})
	if err := c.initError("nationalIDUseCase"); err != nil {
		return nil, err
	}
	return c.nationalIDUseCase, nil
}

// NationalIDHandler returns the national id HTTP handler.
func (c *Container) NationalIDHandler() (*nationalIDHTTP.NationalIDHandler, error) {
	c.nationalIDHandlerInit.Do(func() {
		var err error
		c.nationalIDHandler, err = c.initNationalIDHandler()
		c.setInitError("nationalIDHandler", err)
	})
	if err := c.initError("nationalIDHandler"); err != nil {
		return nil, err
	}
	return c.nationalIDHandler, nil
}

// NationalIDEncryptor returns the PII field encryptor. It needs no database and backs the
// offline check-national-id command as well as the use case.
func (c *Container) NationalIDEncryptor() *nationalIDService.Encryptor {
	return nationalIDService.NewEncryptor(c.FieldCipher(), nationalIDService.NewSHA256HashService())
}

func (c *Container) initNationalIDRepository() (nationalIDUseCase.NationalIDRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for national id repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return nationalIDRepository.NewMySQLNationalIDRepository(db), nil
	case "postgres":
		return nationalIDRepository.NewPostgreSQLNationalIDRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initNationalIDUseCase() (nationalIDUseCase.NationalIDUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for national id use case: %w", err)
	}

	repo, err := c.NationalIDRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get national id repository for national id use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for national id use case: %w", err)
	}

	useCase := nationalIDUseCase.NewNationalIDUseCase(txManager, repo, c.NationalIDEncryptor())
	return nationalIDUseCase.NewNationalIDUseCaseWithMetrics(useCase, businessMetrics), nil
}

func (c *Container) initNationalIDHandler() (*nationalIDHTTP.NationalIDHandler, error) {
	useCase, err := c.NationalIDUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get national id use case for handler: %w", err)
	}
	return nationalIDHTTP.NewNationalIDHandler(useCase, c.Logger()), nil
}
