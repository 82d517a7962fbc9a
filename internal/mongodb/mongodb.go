// Package mongodb connects to the MongoDB deployment holding the message index.
package mongodb

import (
	"context"
	"fmt"
	"strings"

	"github.com/gookit/slog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Config struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	AuthDB   string `mapstructure:"auth_db"`
}

func (c *Config) HasCredentials() bool {
	return strings.TrimSpace(c.Username) != "" && strings.TrimSpace(c.Password) != ""
}

var DefaultConfig = Config{
	URI:      "mongodb://localhost:27017",
	Database: "helloworld",
	AuthDB:   "admin",
}

// ClientOptions builds the driver options for cfg.
func ClientOptions(cfg *Config) *options.ClientOptions {
	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.HasCredentials() {
		opts.SetAuth(options.Credential{
			Username:   cfg.Username,
			Password:   cfg.Password,
			AuthSource: cfg.AuthDB,
		})
	}
	return opts
}

// Connect dials and pings the deployment and returns the configured database.
func Connect(ctx context.Context, cfg *Config) (*mongo.Client, *mongo.Database, error) {
	cli, err := mongo.Connect(ctx, ClientOptions(cfg))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := cli.Ping(ctx, nil); err != nil {
		_ = cli.Disconnect(ctx)
		return nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := cli.Database(cfg.Database)
	slog.Infof("MongoDB connected to %s, using DB: %s", cfg.URI, cfg.Database)
	return cli, db, nil
}
