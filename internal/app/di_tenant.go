package app

import (
	"fmt"

	authService "github.com/holograph/vault/internal/auth/service"
	tenantHTTP "github.com/holograph/vault/internal/tenant/http"
	tenantRepository "github.com/holograph/vault/internal/tenant/repository"
	tenantUsecase "github.com/holograph/vault/internal/tenant/usecase"
)

// IdentityVerifier returns the bearer token verifier.
func (c *Container) IdentityVerifier() authService.IdentityVerifier {
	c.verifierInit.Do(func() {
		c.verifier = authService.NewStaticTokenVerifier(c.config.AuthStaticToken)
	})
	return c.verifier
}

// TenantRepository returns the tenant repository based on database driver.
func (c *Container) TenantRepository() (tenantUsecase.TenantRepository, error) {
	var err error
	c.tenantRepoInit.Do(func() {
		c.tenantRepo, err = c.initTenantRepository()
		if err != nil {
			c.initErrors["tenantRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tenantRepo"]; exists {
		return nil, storedErr
	}
	return c.tenantRepo, nil
}

// TenantUseCase returns the tenant use case instance.
func (c *Container) TenantUseCase() (tenantUsecase.TenantUseCase, error) {
	var err error
	c.tenantUseCaseInit.Do(func() {
		c.tenantUseCase, err = c.initTenantUseCase()
		if err != nil {
			c.initErrors["tenantUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tenantUseCase"]; exists {
		return nil, storedErr
	}
	return c.tenantUseCase, nil
}

// TenantHandler returns the tenant HTTP handler.
func (c *Container) TenantHandler() (*tenantHTTP.TenantHandler, error) {
	var err error
	c.tenantHandlerInit.Do(func() {
		useCase, useCaseErr := c.TenantUseCase()
		if useCaseErr != nil {
			err = useCaseErr
			c.initErrors["tenantHandler"] = err
			return
		}
		c.tenantHandler = tenantHTTP.NewTenantHandler(useCase, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tenantHandler"]; exists {
		return nil, storedErr
	}
	return c.tenantHandler, nil
}

// initTenantRepository creates the tenant repository instance.
func (c *Container) initTenantRepository() (tenantUsecase.TenantRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tenant repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return tenantRepository.NewMySQLTenantRepository(db), nil
	case "postgres":
		return tenantRepository.NewPostgreSQLTenantRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initTenantUseCase creates the tenant use case with all its dependencies.
func (c *Container) initTenantUseCase() (tenantUsecase.TenantUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for tenant use case: %w", err)
	}

	tenantRepo, err := c.TenantRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant repository for tenant use case: %w", err)
	}

	provisioner, err := c.Provisioner()
	if err != nil {
		return nil, fmt.Errorf("failed to get provisioner for tenant use case: %w", err)
	}

	fieldCipher, err := c.FieldCipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get field cipher for tenant use case: %w", err)
	}

	fileStore, err := c.FileStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get file store for tenant use case: %w", err)
	}

	return tenantUsecase.NewTenantUseCase(
		txManager,
		tenantRepo,
		provisioner,
		fieldCipher,
		fileStore,
		c.Logger(),
	), nil
}
