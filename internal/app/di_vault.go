package app

import (
	"fmt"

	vaultHTTP "github.com/holograph/vault/internal/vault/http"
	vaultService "github.com/holograph/vault/internal/vault/service"
	vaultUsecase "github.com/holograph/vault/internal/vault/usecase"
)

// Provisioner returns the tenant key provisioner.
func (c *Container) Provisioner() (vaultService.Provisioner, error) {
	var err error
	c.provisionerInit.Do(func() {
		keyStore, keyStoreErr := c.KeyStore()
		if keyStoreErr != nil {
			err = keyStoreErr
			c.initErrors["provisioner"] = err
			return
		}
		c.provisioner = vaultService.NewKeyProvisioner(keyStore, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["provisioner"]; exists {
		return nil, storedErr
	}
	return c.provisioner, nil
}

// FieldCipher returns the hybrid field cipher.
func (c *Container) FieldCipher() (vaultService.FieldCipher, error) {
	var err error
	c.fieldCipherInit.Do(func() {
		keyStore, keyStoreErr := c.KeyStore()
		if keyStoreErr != nil {
			err = keyStoreErr
			c.initErrors["fieldCipher"] = err
			return
		}
		c.fieldCipher = vaultService.NewHybridFieldCipher(keyStore, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["fieldCipher"]; exists {
		return nil, storedErr
	}
	return c.fieldCipher, nil
}

// FileCipher returns the AES file cipher.
func (c *Container) FileCipher() (vaultService.FileCipher, error) {
	var err error
	c.fileCipherInit.Do(func() {
		provisioner, provisionerErr := c.Provisioner()
		if provisionerErr != nil {
			err = provisionerErr
			c.initErrors["fileCipher"] = err
			return
		}
		c.fileCipher = vaultService.NewBlobFileCipher(provisioner, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["fileCipher"]; exists {
		return nil, storedErr
	}
	return c.fileCipher, nil
}

// VaultUseCase returns the vault use case, wrapped with metrics when enabled.
func (c *Container) VaultUseCase() (vaultUsecase.VaultUseCase, error) {
	var err error
	c.vaultUseCaseInit.Do(func() {
		c.vaultUseCase, err = c.initVaultUseCase()
		if err != nil {
			c.initErrors["vaultUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["vaultUseCase"]; exists {
		return nil, storedErr
	}
	return c.vaultUseCase, nil
}

// VaultHandler returns the vault HTTP handler.
func (c *Container) VaultHandler() (*vaultHTTP.VaultHandler, error) {
	var err error
	c.vaultHandlerInit.Do(func() {
		useCase, useCaseErr := c.VaultUseCase()
		if useCaseErr != nil {
			err = useCaseErr
			c.initErrors["vaultHandler"] = err
			return
		}
		c.vaultHandler = vaultHTTP.NewVaultHandler(useCase, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["vaultHandler"]; exists {
		return nil, storedErr
	}
	return c.vaultHandler, nil
}

// initVaultUseCase creates the vault use case with all its dependencies.
func (c *Container) initVaultUseCase() (vaultUsecase.VaultUseCase, error) {
	provisioner, err := c.Provisioner()
	if err != nil {
		return nil, fmt.Errorf("failed to get provisioner for vault use case: %w", err)
	}

	fieldCipher, err := c.FieldCipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get field cipher for vault use case: %w", err)
	}

	fileCipher, err := c.FileCipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get file cipher for vault use case: %w", err)
	}

	tenantRepo, err := c.TenantRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant repository for vault use case: %w", err)
	}

	useCase := vaultUsecase.NewVaultUseCase(
		provisioner,
		fieldCipher,
		fileCipher,
		tenantRepo,
		c.Logger(),
	)

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for vault use case: %w", err)
	}

	return vaultUsecase.NewVaultUseCaseWithMetrics(useCase, businessMetrics), nil
}
