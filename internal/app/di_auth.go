package app

import (
	"fmt"

	authService "github.com/radarone/vault/internal/auth/service"
)

// TokenService returns the JWT service that verifies API bearer tokens.
func (c *Container) TokenService() (authService.TokenService, error) {
	c.tokenServiceInit.Do(func() {
		var err error
		c.tokenService, err = c.initTokenService()
		c.setInitError("tokenService", err)
	})
	if err := c.initError("tokenService"); err != nil {
		return nil, err
	}
	return c.tokenService, nil
}

func (c *Container) initTokenService() (authService.TokenService, error) {
	tokenService, err := authService.NewJWTTokenService(c.config.AuthJWTSecret, c.config.AuthJWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}
	return tokenService, nil
}
