package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/dentix/clinic-server/internal/api/http/handler"
	"github.com/dentix/clinic-server/internal/api/http/middleware"
	"github.com/dentix/clinic-server/internal/api/http/router"
	httpServer "github.com/dentix/clinic-server/internal/api/http/server"
	"github.com/dentix/clinic-server/internal/config"
	"github.com/dentix/clinic-server/internal/logger"
	"github.com/dentix/clinic-server/internal/mailer"
	"github.com/dentix/clinic-server/internal/model"
	"github.com/dentix/clinic-server/internal/password"
	"github.com/dentix/clinic-server/internal/repository/postgres"
	"github.com/dentix/clinic-server/internal/server"
	"github.com/dentix/clinic-server/internal/service"
	storage "github.com/dentix/clinic-server/internal/storage/minio"
	"github.com/dentix/clinic-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	hasher := password.NewBcrypt(0)

	accountRepo := postgres.NewAccountRepository(db, hasher)
	roleRepo := postgres.NewRoleRepository(db)
	auditRepo := postgres.NewAuditRepository(db)
	settingsRepo := postgres.NewSettingsRepository(db)
	refreshTokenRepo := postgres.NewRefreshTokenRepository(db)
	specialistRepo := postgres.NewSpecialistRepository(db)
	specialtyRepo := postgres.NewSpecialtyRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	odontogramRepo := postgres.NewOdontogramRepository(db)

	tokenManager := token.NewJWT(cfg.JWT.Secret)

	smtpSender := mailer.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From, cfg.SMTP.ConfirmationURL)
	dispatcher := mailer.NewDispatcher(smtpSender, cfg.SMTP.DispatchTimeout, logger)

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, cfg.Storage.Bucket)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	settingsService := service.NewSettings(settingsRepo, logger)
	registrationService := service.NewRegistration(accountRepo, roleRepo, auditRepo, dispatcher, settingsService, logger)
	tokenService := service.NewTokenService(tokenManager, refreshTokenRepo, logger)
	authService := service.NewAuth(accountRepo, roleRepo, tokenService, logger)
	accountService := service.NewAccount(accountRepo, roleRepo, auditRepo, logger)
	specialistService := service.NewSpecialist(specialistRepo, specialtyRepo, logger)
	odontogramService := service.NewOdontogram(patientRepo, odontogramRepo, storageClient, logger)

	srv := registerHTTPServer(
		logger,
		registrationService,
		authService,
		tokenService,
		accountService,
		specialistService,
		odontogramService,
		fmt.Sprintf(":%s", cfg.HTTP.Port),
	)

	var sl model.SecurityLayer

	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	dispatcher.Shutdown(shutdownCtx)

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

func registerHTTPServer(
	logger *logger.Logger,
	registrationService *service.Registration,
	authService *service.Auth,
	tokenService *service.TokenService,
	accountService *service.Account,
	specialistService *service.Specialist,
	odontogramService *service.Odontogram,
	addr string,
) *httpServer.HTTPServer {
	authHandler := handler.NewAuth(registrationService, authService, tokenService, logger)
	accountHandler := handler.NewAccount(accountService, logger)
	specialistHandler := handler.NewSpecialist(specialistService, logger)
	odontogramHandler := handler.NewOdontogram(odontogramService, logger)

	authenticate := middleware.NewAuthenticate(tokenService, logger)
	requireRole := middleware.NewRequireRole(authService, logger)
	logging := middleware.NewLogging(logger)

	app := fiber.New(fiber.Config{
		BodyLimit: 32 * 1024 * 1024,
	})

	r := router.New(
		authHandler,
		accountHandler,
		specialistHandler,
		odontogramHandler,
		authenticate,
		requireRole,
		logging,
		logger,
	)
	r.Register(app)

	return httpServer.NewHTTPServer(app, addr)
}
