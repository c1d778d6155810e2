// cmd/gateway/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"intake-gateway/internal/common/auth"
	commonaws "intake-gateway/internal/common/aws"
	"intake-gateway/internal/common/config"
	"intake-gateway/internal/common/logger"
	"intake-gateway/internal/common/metrics"
	"intake-gateway/internal/common/observability"
	"intake-gateway/internal/intake"
	"intake-gateway/internal/mcp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New("info", "console")
		fallback.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting intake gateway...")

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init AWS Clients ---
	dynamo, err := commonaws.NewDynamoDBClient(ctx, cfg.AWS.Region)
	if err != nil {
		zapLog.Fatal("dynamodb client init failed", zap.Error(err))
	}
	sesClient, err := commonaws.NewSESClient(ctx, cfg.AWS.Region)
	if err != nil {
		zapLog.Fatal("ses client init failed", zap.Error(err))
	}

	var snsClient *commonaws.SNSClient
	if cfg.Intake.SNSTopicARN != "" {
		snsClient, err = commonaws.NewSNSClient(ctx, cfg.AWS.Region)
		if err != nil {
			zapLog.Fatal("sns client init failed", zap.Error(err))
		}
	}
	zapLog.Info("AWS clients initialized", zap.String("region", cfg.AWS.Region))

	// --- Init Rate Limiter ---
	var limiter intake.Limiter = intake.NewNoopLimiter()
	if cfg.Redis.Address != "" && cfg.Intake.RatePerMin > 0 {
		rdb := redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.Address,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			// Limiter fails open per request, so a dead Redis only costs
			// the rate limit, not intake availability.
			zapLog.Warn("redis unreachable, limiter will fail open", zap.Error(err))
		}
		limiter = intake.NewFixedWindowLimiter(rdb, cfg.Intake.RatePerMin, log)
		defer rdb.Close()
	}

	// --- Assemble Components ---
	store := intake.NewDynamoStore(dynamo, cfg.Intake.Table)
	notifier := intake.NewChannelNotifier(
		sesClient, snsClient,
		cfg.Intake.SenderEmail, cfg.Intake.NotifyEmail, cfg.Intake.SNSTopicARN,
		log,
	)
	intakeService := intake.NewService(store, notifier, log)
	intakeHandler := intake.NewHandler(intakeService, limiter, log)

	mcpClient := mcp.NewClient(cfg.MCP.ServerURL, cfg.MCP.APIKey)
	mcpHandler := mcp.NewHandler(mcpClient, log)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestMetrics(obs))
	r.Use(requestLogging(log))
	r.Use(auth.Middleware)

	r.Get("/health", handleStatus("healthy"))
	r.Get("/ready", handleStatus("ready"))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/ciag", intakeHandler.Routes)
	r.Route("/api/mcp", func(api chi.Router) {
		api.Use(auth.RequireAuthenticated)
		mcpHandler.Routes(api)
	})

	srv := &http.Server{
		Addr:    ":" + strconv.Itoa(cfg.Server.Port),
		Handler: r,
	}

	go func() {
		zapLog.Info("Gateway listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error during shutdown", zap.Error(err))
	}

	zapLog.Info("Gateway stopped gracefully")
}

func handleStatus(status string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"status": status,
			"time":   time.Now().Format(time.RFC3339),
		})
	}
}

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func requestMetrics(obs *observability.Observability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(rec, r)

			route := r.Method + " " + r.URL.Path
			status := strconv.Itoa(rec.status)
			metrics.RequestsTotal.WithLabelValues(route, status).Inc()
			metrics.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
			obs.RecordRequest(r.Context(), route, status)
			obs.RecordRequestDuration(r.Context(), time.Since(start), route)
		})
	}
}

func requestLogging(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			start := time.Now()
			next.ServeHTTP(rec, r)

			log.Info("request handled", map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   rec.status,
				"duration": fmt.Sprintf("%.3fms", float64(time.Since(start).Microseconds())/1000),
			})
		})
	}
}
