// Package main is the entry point for the langodata gateway server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"langodata/internal/domain/auth"
	"langodata/internal/domain/catalog"
	"langodata/internal/domain/extract"
	"langodata/internal/domain/license"
	"langodata/internal/domain/rates"
	"langodata/internal/domain/submissions"
	v1 "langodata/internal/infrastructure/http/v1"
	"langodata/internal/infrastructure/storage/postgres"
	"langodata/internal/infrastructure/storage/postgres/rate_repo"
	"langodata/internal/infrastructure/storage/postgres/submission_repo"
	"langodata/internal/infrastructure/storage/postgres/user_repo"
	"langodata/pkg/logger"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting langodata gateway")

	// --- License ---
	lic, err := license.NewManager(license.Config{
		Key:          mustEnv("LICENSE_KEY"),
		IssueDate:    mustEnv("LICENSE_ISSUE_DATE"),
		ValidityDays: getEnvInt("LICENSE_VALIDITY_DAYS", 365),
		Credentials:  getEnv("LICENSE_CREDENTIALS", ""),
	})
	if err != nil {
		log.Fatalw("failed to initialize license manager", "error", err)
	}
	if !lic.Status() {
		log.Warn("license is not valid; data endpoints will refuse requests")
	}
	if soon, days := lic.ExpiresSoon(); soon {
		log.Warnw("license expires soon", "days_left", days)
	}

	// --- Data source pools ---
	sourceConfigs := loadSourceConfigs()
	if len(sourceConfigs) == 0 {
		log.Fatalw("no data sources configured", "hint", "set BSIS_DB_HOST, EDI_DB_HOST or DWH_DB_HOST")
	}
	sources, err := postgres.NewSourceSet(ctx, sourceConfigs, log)
	if err != nil {
		log.Fatalw("failed to connect to data sources", "error", err)
	}
	defer sources.Close()

	// The BSIS pool also carries the gateway's own tables (users, audit).
	gatewayPool, err := sources.Get(catalog.SourceBSIS)
	if err != nil {
		log.Fatalw("BSIS source is required for gateway tables", "error", err)
	}

	// --- JWT and auth ---
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(mustEnv("JWT_SECRET")))
	userRepo := user_repo.NewUserRepo(gatewayPool)
	authService := auth.NewService(userRepo, jwtService, log)
	gate := auth.NewEnvironmentGate(lic)

	// --- Query dispatcher ---
	registry := catalog.NewRegistry()
	executor := postgres.NewExecutor(sources, log)

	var auditor extract.Auditor
	if getEnv("QUERY_AUDIT_ENABLED", "true") == "true" {
		audit, err := postgres.NewQueryAudit(gatewayPool, log)
		if err != nil {
			log.Fatalw("failed to initialize query audit", "error", err)
		}
		auditor = audit
	}

	extractService := extract.NewService(registry, executor, gate, auditor, log)
	ratesService := rates.NewService(rate_repo.NewRateRepo(sources), log)
	submissionsService := submissions.NewService(submission_repo.NewSubmissionRepo(sources), log)

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Sources:            sources,
		License:            lic,
		Logger:             log,
		JWTValidator:       jwtService,
		AuthService:        authService,
		ExtractService:     extractService,
		RatesService:       ratesService,
		SubmissionsService: submissionsService,
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port, "sources", len(sourceConfigs))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

// loadSourceConfigs builds one pool config per configured data source.
// A source is configured when its <PREFIX>_DB_HOST variable is set.
func loadSourceConfigs() []postgres.SourceConfig {
	defs := []struct {
		source catalog.DataSource
		prefix string
	}{
		{catalog.SourceBSIS, "BSIS"},
		{catalog.SourceEDI, "EDI"},
		{catalog.SourceDWH, "DWH"},
	}

	var configs []postgres.SourceConfig
	for _, d := range defs {
		host := os.Getenv(d.prefix + "_DB_HOST")
		if host == "" {
			continue
		}
		configs = append(configs, postgres.SourceConfig{
			Source:          d.source,
			Host:            host,
			Port:            getEnvInt(d.prefix+"_DB_PORT", 5432),
			Database:        mustEnv(d.prefix + "_DB_NAME"),
			Username:        mustEnv(d.prefix + "_DB_USER"),
			Password:        mustEnv(d.prefix + "_DB_PASSWORD"),
			PasswordEncoded: getEnv(d.prefix+"_DB_PASSWORD_ENCODED", "false") == "true",
			MaxConns:        int32(getEnvInt(d.prefix+"_DB_MAX_CONNS", 10)),
		})
	}
	return configs
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(strings.TrimSpace(value), "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}
