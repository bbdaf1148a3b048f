package main

import (
	"context"
	"strings"

	"github.com/redis/go-redis/v9"

	appnotify "github.com/jhoicas/salon-pos/internal/application/notify"
	infranotify "github.com/jhoicas/salon-pos/internal/infrastructure/notify"
	"github.com/jhoicas/salon-pos/pkg/config"
	"github.com/jhoicas/salon-pos/pkg/logger"
)

// notifyChannels arma los canales configurados. El log siempre está; los demás se omiten si falta su configuración
// o si no se pueden inicializar (se registra el motivo y la app sigue).
func notifyChannels(ctx context.Context, cfg config.NotifyConfig, log *logger.Logger) ([]appnotify.Channel, func()) {
	channels := []appnotify.Channel{infranotify.NewLogChannel(log)}
	closers := []func(){}

	if cfg.SMTPHost != "" && cfg.EmailTo != "" {
		channels = append(channels, infranotify.NewEmailChannel(infranotify.EmailConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			User:     cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			To:       splitList(cfg.EmailTo),
		}))
	}

	if cfg.RedisQueue != "" && cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Warn().Err(err).Msg("canal queue deshabilitado")
		} else {
			rdb := redis.NewClient(opts)
			closers = append(closers, func() { _ = rdb.Close() })
			channels = append(channels, infranotify.NewQueueChannel(rdb, cfg.RedisQueue))
		}
	}

	if cfg.FirebaseProjectID != "" {
		client, err := infranotify.NewMessagingClient(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredentials)
		if err != nil {
			log.Warn().Err(err).Msg("canal push deshabilitado")
		} else {
			channels = append(channels, infranotify.NewPushChannel(client, cfg.FCMTopic))
		}
	}

	names := make([]string, 0, len(channels))
	for _, ch := range channels {
		names = append(names, ch.Name())
	}
	log.Info().Strs("channels", names).Msg("canales de aviso")

	return channels, func() {
		for _, c := range closers {
			c()
		}
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
