// Command main prints favorites events published on the user channels.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"holocron/internal/config"
	"holocron/internal/middleware"
	"holocron/internal/notifications"
)

func main() {
	userFilter := flag.Uint("user", 0, "Only print events for this user id (0 prints all)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.RedisURL == "" {
		log.Fatal("REDIS_URL is not set")
	}
	logger := middleware.NewLogger(cfg.Env, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb, err := notifications.ConnectRedis(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer func() { _ = rdb.Close() }()

	n := notifications.NewNotifier(rdb)
	err = n.StartUserSubscriber(ctx, func(channel, payload string) {
		var ev notifications.Event
		if err := json.Unmarshal([]byte(payload), &ev); err != nil {
			logger.Warn("undecodable event", slog.String("channel", channel), slog.String("error", err.Error()))
			return
		}
		if *userFilter != 0 && ev.UserID != *userFilter {
			return
		}
		logger.Info(ev.Type,
			slog.String("id", ev.ID),
			slog.Uint64("user_id", uint64(ev.UserID)),
			slog.Time("occurred_at", ev.OccurredAt),
			slog.Any("payload", ev.Payload),
		)
	})
	if err != nil {
		log.Fatalf("Failed to subscribe: %v", err)
	}

	logger.Info("Listening for favorites events", slog.String("redis", cfg.RedisURL))
	<-ctx.Done()
}
