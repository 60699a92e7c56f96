// seed-users creates the demo accounts alice, bob and charlie.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/playto-dev/playto/backend/internal/service"
	"github.com/playto-dev/playto/backend/internal/storage/pg"
	"github.com/playto-dev/playto/shared/config"
	"github.com/playto-dev/playto/shared/domain"
	"github.com/playto-dev/playto/shared/errors"
	"github.com/playto-dev/playto/shared/jwt"
	"github.com/playto-dev/playto/shared/logger"
	sharedpg "github.com/playto-dev/playto/shared/storage/pg"
)

var demoUsers = []domain.Username{"alice", "bob", "charlie"}

const demoPassword = "password"

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "backend/config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	storage, err := pg.NewWithPool(ctx, cfg, sharedpg.LightweightConnectionConfig())
	if err != nil {
		logger.Log.Error("failed to connect", "error", err)
		os.Exit(1)
	}
	defer storage.Cleanup()

	auth := service.NewAuth(storage, jwt.New(cfg.JwtKey(), cfg.JwtTTL()))
	for _, username := range demoUsers {
		id, err := auth.Register(ctx, domain.Credentials{Username: username, Password: demoPassword})
		switch {
		case errors.IsConflict(err):
			logger.Log.Info("user already exists", "username", username)
		case err != nil:
			logger.Log.Error("failed to create user", "username", username, "error", err)
			os.Exit(1)
		default:
			logger.Log.Info("created user", "username", username, "user_id", id)
		}
	}
}
