// cmd/marketplace/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"uniautomarket/internal/common/config"
	"uniautomarket/internal/common/logger"
	"uniautomarket/internal/common/observability"
	"uniautomarket/internal/notify"
	"uniautomarket/internal/storage"
	"uniautomarket/internal/store/catalog"
	"uniautomarket/internal/store/interaction"
	"uniautomarket/internal/store/session"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting marketplace...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("marketplace")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Remote Store Adapter ---
	adapter, err := buildAdapter(ctx, cfg, log, zapLog)
	if err != nil {
		zapLog.Fatal("storage adapter failed", zap.Error(err))
	}
	defer adapter.Close()
	zapLog.Info("Storage adapter ready", zap.String("driver", cfg.Storage.Driver))

	// --- Init Stores ---
	sessionStore := session.New(cfg.Seed, log)
	catalogStore := catalog.New(adapter, log)
	interactionStore := interaction.New(sessionStore, log)

	tree := catalogStore.Load(ctx)
	zapLog.Info("Catalog loaded",
		zap.Int("categories", len(tree)),
		zap.Bool("offline", catalogStore.Offline()),
	)

	unsubscribeRemote := catalogStore.SubscribeRemote()
	defer unsubscribeRemote()

	// --- Init Notification Channels ---
	var toaster notify.Toaster
	if cfg.Notifications.Toast {
		toaster = notify.NewLogToaster(log)
	}

	var email *notify.EmailChannel
	if cfg.Notifications.Email.Enabled {
		email, err = notify.NewEmailChannel(ctx, cfg.Notifications.Email.Region, cfg.Notifications.Email.FromEmail, log)
		if err != nil {
			zapLog.Fatal("email channel failed", zap.Error(err))
		}
	}

	var sms *notify.SMSChannel
	if cfg.Notifications.SMS.Enabled {
		sms, err = notify.NewSMSChannel(ctx, cfg.Notifications.SMS.Region, log)
		if err != nil {
			zapLog.Fatal("sms channel failed", zap.Error(err))
		}
	}

	dispatcher := notify.NewDispatcher(sessionStore, toaster, email, sms, log)
	unsubscribeNotif := interactionStore.SubscribeNotifications(dispatcher.Dispatch)
	defer unsubscribeNotif()

	zapLog.Info("Stores and notification channels initialized")

	// --- Health & Metrics Server ---
	if cfg.Metrics.Enabled {
		go func() {
			mux := http.NewServeMux()
			mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				json.NewEncoder(w).Encode(map[string]string{
					"status": "healthy",
					"time":   time.Now().Format(time.RFC3339),
				})
			})
			mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				status := "ready"
				code := http.StatusOK
				if catalogStore.Offline() {
					status = "degraded"
					code = http.StatusServiceUnavailable
				}
				w.WriteHeader(code)
				json.NewEncoder(w).Encode(map[string]string{
					"status": status,
					"time":   time.Now().Format(time.RFC3339),
				})
			})
			mux.Handle("/metrics", promhttp.Handler())
			zapLog.Info("Health/Metrics server listening", zap.String("address", cfg.Metrics.Address))
			if err := http.ListenAndServe(cfg.Metrics.Address, mux); err != nil {
				zapLog.Error("Health/Metrics server failed", zap.Error(err))
			}
		}()
	}

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, flushing pending writes...")
	catalogStore.Flush()

	zapLog.Info("Marketplace stopped gracefully")
}

// buildAdapter selects the remote store backend from configuration. The
// memory driver keeps everything in-process and is the default.
func buildAdapter(ctx context.Context, cfg *config.Config, log logger.Logger, zapLog *zap.Logger) (storage.RemoteStore, error) {
	switch cfg.Storage.Driver {
	case "memory", "":
		return storage.NewMemory(), nil

	case "file":
		return storage.NewFile(cfg.Storage.File.Path), nil

	case "redis":
		adapter := storage.NewRedis(cfg.Storage.Redis, log)
		err := retryWithBackoff(func() error {
			return adapter.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			return nil, err
		}
		return adapter, nil

	case "postgres":
		var adapter *storage.Postgres
		err := retryWithBackoff(func() error {
			var err error
			adapter, err = storage.NewPostgres(cfg.Storage.Postgres, log)
			if err != nil {
				return err
			}
			return adapter.EnsureSchema(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			return nil, err
		}
		return adapter, nil

	case "github":
		return storage.NewGitHub(cfg.Storage.GitHub, log), nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
