package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	authHTTP "github.com/holograph/vault/internal/auth/http"
	authService "github.com/holograph/vault/internal/auth/service"
	"github.com/holograph/vault/internal/config"
	fileHTTP "github.com/holograph/vault/internal/files/http"
	tenantHTTP "github.com/holograph/vault/internal/tenant/http"
	vaultHTTP "github.com/holograph/vault/internal/vault/http"
	"github.com/holograph/vault/web"
)

// Server is the API HTTP server.
type Server struct {
	server *http.Server
	config *config.Config
	logger *slog.Logger

	verifier      authService.IdentityVerifier
	tenantHandler *tenantHTTP.TenantHandler
	vaultHandler  *vaultHTTP.VaultHandler
	fileHandler   *fileHTTP.FileHandler
}

// NewServer creates the API server with all route handlers.
func NewServer(
	cfg *config.Config,
	verifier authService.IdentityVerifier,
	tenantHandler *tenantHTTP.TenantHandler,
	vaultHandler *vaultHTTP.VaultHandler,
	fileHandler *fileHTTP.FileHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		config:        cfg,
		logger:        logger,
		verifier:      verifier,
		tenantHandler: tenantHandler,
		vaultHandler:  vaultHandler,
		fileHandler:   fileHandler,
	}
}

// setupRouter builds the gin router with middleware and all routes. ctx feeds
// the readiness handler so /ready flips once shutdown begins.
func (s *Server) setupRouter(ctx context.Context) *gin.Engine {
	gin.SetMode(s.config.GetGinMode())

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New())
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(s.config.CORSEnabled, s.config.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", HealthHandler)
	router.GET("/ready", ReadinessHandler(ctx))

	// Browser encryption helper, served unauthenticated: it contains no
	// secrets, only code.
	router.GET("/static/encryption.js", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/javascript; charset=utf-8", web.EncryptionJS)
	})

	v1 := router.Group("/v1")
	v1.Use(authHTTP.AuthenticationMiddleware(s.verifier, s.logger))

	// Tenant lifecycle and membership
	v1.POST("/tenants", s.tenantHandler.CreateTenantHandler)
	v1.GET("/tenants/:id", s.tenantHandler.GetTenantHandler)
	v1.DELETE("/tenants/:id", s.tenantHandler.DeleteTenantHandler)
	v1.POST("/tenants/:id/members", s.tenantHandler.AddMemberHandler)
	v1.DELETE("/tenants/:id/members/:userId", s.tenantHandler.RemoveMemberHandler)

	// Field and server-side file encryption
	v1.POST("/tenants/:id/fields/encrypt", s.vaultHandler.EncryptFieldHandler)
	v1.POST("/tenants/:id/fields/decrypt", s.vaultHandler.DecryptFieldHandler)
	v1.POST("/tenants/:id/files/encrypt", s.vaultHandler.EncryptFileHandler)
	v1.POST("/tenants/:id/files/decrypt", s.vaultHandler.DecryptFileHandler)

	// Raw key release for browser-side encryption, rate limited per user
	keyRelease := v1.Group("")
	if s.config.RateLimitKeyReleaseEnabled {
		keyRelease.Use(authHTTP.RateLimitMiddleware(
			s.config.RateLimitKeyReleasePerSec,
			s.config.RateLimitKeyReleaseBurst,
			s.logger,
		))
	}
	keyRelease.GET("/tenants/:id/aes-key", s.vaultHandler.ReleaseKeyHandler)

	// Document storage
	v1.POST("/tenants/:id/files", s.fileHandler.UploadFileHandler)
	v1.GET("/tenants/:id/files", s.fileHandler.ListFilesHandler)
	v1.GET("/tenants/:id/files/:fileId", s.fileHandler.DownloadFileHandler)
	v1.DELETE("/tenants/:id/files/:fileId", s.fileHandler.DeleteFileHandler)

	return router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.setupRouter(context.Background())
}

// Start starts the API HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.setupRouter(ctx)

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the API HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
