package app

import (
	"fmt"

	fileHTTP "github.com/holograph/vault/internal/files/http"
	fileRepository "github.com/holograph/vault/internal/files/repository"
	fileUsecase "github.com/holograph/vault/internal/files/usecase"
)

// FileRepository returns the file record repository based on database driver.
func (c *Container) FileRepository() (fileUsecase.FileRepository, error) {
	var err error
	c.fileRepoInit.Do(func() {
		c.fileRepo, err = c.initFileRepository()
		if err != nil {
			c.initErrors["fileRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["fileRepo"]; exists {
		return nil, storedErr
	}
	return c.fileRepo, nil
}

// FileUseCase returns the file use case instance.
func (c *Container) FileUseCase() (fileUsecase.FileUseCase, error) {
	var err error
	c.fileUseCaseInit.Do(func() {
		c.fileUseCase, err = c.initFileUseCase()
		if err != nil {
			c.initErrors["fileUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["fileUseCase"]; exists {
		return nil, storedErr
	}
	return c.fileUseCase, nil
}

// FileHandler returns the file HTTP handler.
func (c *Container) FileHandler() (*fileHTTP.FileHandler, error) {
	var err error
	c.fileHandlerInit.Do(func() {
		useCase, useCaseErr := c.FileUseCase()
		if useCaseErr != nil {
			err = useCaseErr
			c.initErrors["fileHandler"] = err
			return
		}
		c.fileHandler = fileHTTP.NewFileHandler(useCase, c.config.MaxUploadSizeBytes, c.Logger())
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["fileHandler"]; exists {
		return nil, storedErr
	}
	return c.fileHandler, nil
}

// initFileRepository creates the file record repository instance.
func (c *Container) initFileRepository() (fileUsecase.FileRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for file repository: %w", err)
	}

	// Select the appropriate repository based on the database driver
	switch c.config.DBDriver {
	case "mysql":
		return fileRepository.NewMySQLFileRepository(db), nil
	case "postgres":
		return fileRepository.NewPostgreSQLFileRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initFileUseCase creates the file use case with all its dependencies.
func (c *Container) initFileUseCase() (fileUsecase.FileUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for file use case: %w", err)
	}

	fileRepo, err := c.FileRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get file repository for file use case: %w", err)
	}

	tenantRepo, err := c.TenantRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant repository for file use case: %w", err)
	}

	fieldCipher, err := c.FieldCipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get field cipher for file use case: %w", err)
	}

	fileCipher, err := c.FileCipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get file cipher for file use case: %w", err)
	}

	fileStore, err := c.FileStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get file store for file use case: %w", err)
	}

	return fileUsecase.NewFileUseCase(
		txManager,
		fileRepo,
		tenantRepo,
		fieldCipher,
		fileCipher,
		fileStore,
		c.Logger(),
	), nil
}
