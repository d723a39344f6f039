package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	DefaultDatabase   = "AAC"
	DefaultCollection = "animals"
)

var (
	ErrHostRequired = errors.New("mongo host required")
)

// Config de la conexión autenticada al document store.
type Config struct {
	Host       string // host:port o URI mongodb://...
	Username   string
	Password   string
	AuthSource string // opcional; vacío = default del driver (admin)

	ConnectTimeout time.Duration
}

func (c Config) uri() string {
	h := strings.TrimSpace(c.Host)
	if strings.HasPrefix(h, "mongodb://") || strings.HasPrefix(h, "mongodb+srv://") {
		return h
	}
	return "mongodb://" + h
}

// Open abre un cliente (el driver mantiene su propio pool) y verifica con Ping.
func Open(ctx context.Context, cfg Config) (*mongo.Client, error) {
	if strings.TrimSpace(cfg.Host) == "" {
		return nil, ErrHostRequired
	}

	timeout := cfg.ConnectTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	opts := options.Client().
		ApplyURI(cfg.uri()).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)

	// Las credenciales van aparte y no embebidas en la URI: así no hay que escapar
	// caracteres especiales del password.
	if u := strings.TrimSpace(cfg.Username); u != "" {
		opts.SetAuth(options.Credential{
			Username:   u,
			Password:   cfg.Password,
			AuthSource: strings.TrimSpace(cfg.AuthSource),
		})
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, nil
}
