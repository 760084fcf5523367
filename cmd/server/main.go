package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/Skufu/CareNote/internal/config"
	"github.com/Skufu/CareNote/internal/llm"
	"github.com/Skufu/CareNote/internal/logging"
	"github.com/Skufu/CareNote/internal/metrics"
	"github.com/Skufu/CareNote/internal/report"
	"github.com/Skufu/CareNote/internal/risk"
)

type HealthChecker interface {
	Ping(ctx context.Context) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logging.New("info", "json")
		boot.Fatal().Err(err).Msg("config error")
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()
	var db HealthChecker
	var pool *pgxpool.Pool
	if cfg.EnableDB {
		pool, err = connectDB(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("database connection failed")
		}
		defer pool.Close()
		db = pool
	}

	catalog, err := loadCatalog(ctx, cfg, pool)
	if err != nil {
		logger.Fatal().Err(err).Str("source", cfg.CatalogSource).Msg("risk catalog load failed")
	}
	logger.Info().Str("source", cfg.CatalogSource).Strs("conditions", catalog.Names()).Msg("risk catalog loaded")

	a := &api{catalog: catalog, fontDir: cfg.FontDir, log: logger}
	if cfg.LLMEnabled() {
		client := llm.NewOpenAI(llm.OpenAIConfig{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
			Timeout: cfg.LLMTimeout,
		})
		a.generator = report.NewGenerator(client, catalog, logger)
	} else {
		logger.Warn().Msg("OPENAI_API_KEY not set; report generation disabled")
	}

	staticRoot := detectStaticRoot()
	router := setupRouter(db, a, staticRoot)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// A Korean report is six sequential model calls.
		WriteTimeout: 6*cfg.LLMTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	logger.Info().Str("port", cfg.Port).Str("static_root", staticRoot).Msg("server listening")
	waitForShutdown(server, logger)
}

func loadCatalog(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) (*risk.Catalog, error) {
	switch cfg.CatalogSource {
	case config.CatalogFile:
		return risk.LoadCatalog(cfg.CatalogPath)
	case config.CatalogDB:
		if pool == nil {
			return nil, fmt.Errorf("catalog source db needs a database connection")
		}
		loadCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return risk.LoadCatalogDB(loadCtx, pool)
	default:
		return risk.DefaultCatalog(), nil
	}
}

func connectDB(ctx context.Context, url string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse db url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return pool, nil
}

func setupRouter(db HealthChecker, a *api, staticRoot string) *gin.Engine {
	router := gin.New()
	router.Use(
		logging.Middleware(a.log),
		gin.Recovery(),
		limitBodySize(1<<20), // 1MB max body
		cors.New(cors.Config{
			AllowOrigins:  []string{"*"},
			AllowMethods:  []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", logging.RequestIDHeader},
			ExposeHeaders: []string{"Content-Disposition", logging.RequestIDHeader},
			MaxAge:        12 * time.Hour,
		}),
	)

	// Browser form.
	router.StaticFile("/", filepath.Join(staticRoot, "index.html"))
	router.StaticFile("/styles.css", filepath.Join(staticRoot, "styles.css"))
	router.StaticFile("/app.js", filepath.Join(staticRoot, "app.js"))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/readyz", func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "disabled", "llm": a.llmStatus()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "degraded",
				"db":     fmt.Sprintf("unhealthy: %v", err),
				"llm":    a.llmStatus(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"db":     "ok",
			"llm":    a.llmStatus(),
		})
	})

	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	apiGroup := router.Group("/api")
	apiGroup.GET("/samples", a.listSamples)
	apiGroup.GET("/risk/catalog", a.getCatalog)
	apiGroup.POST("/risk/score", a.scoreRisk)
	apiGroup.POST("/risk/chart", a.renderChart)
	apiGroup.POST("/reports", a.createReport)
	apiGroup.POST("/reports/pdf", a.createReportPDF)
	apiGroup.POST("/questions", a.askQuestion)

	return router
}

func waitForShutdown(server *http.Server, logger zerolog.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info().Msg("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func limitBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// detectStaticRoot finds the web/ directory holding index.html, starting at
// the working directory and walking up two levels.
func detectStaticRoot() string {
	startDir, err := os.Getwd()
	if err != nil {
		return "web"
	}

	candidates := []string{
		startDir,
		filepath.Dir(startDir),
		filepath.Dir(filepath.Dir(startDir)),
	}

	for _, dir := range candidates {
		web := filepath.Join(dir, "web")
		if fileExists(filepath.Join(web, "index.html")) {
			return web
		}
	}

	return filepath.Join(startDir, "web")
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
