package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/proappliance/quoteadmin/internal/authevents"
	"github.com/proappliance/quoteadmin/internal/config"
	"github.com/proappliance/quoteadmin/internal/db"
	"github.com/proappliance/quoteadmin/internal/services"
	"github.com/proappliance/quoteadmin/internal/storage"
	redis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const redisPingTimeout = 3 * time.Second

// application holds the wiring shared by the server and the CLI commands.
type application struct {
	cfg      config.Config
	database *gorm.DB
	repos    *db.Repositories
	bus      authevents.Bus
	redis    *redis.Client
	redisBus *authevents.RedisBus
	auth     *services.AuthService
	quotes   *services.QuoteService
	seeder   *services.SeedService
}

func newApplication(cfg config.Config) (*application, error) {
	database, err := db.Open(cfg.Database.Driver, cfg.DatabaseDSN())
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}

	app := &application{
		cfg:      cfg,
		database: database,
		repos:    db.NewRepositories(database),
	}

	if cfg.Redis.Enabled() {
		if err := app.connectRedis(); err != nil {
			app.Close()
			return nil, err
		}
	} else {
		app.bus = authevents.NewMemoryBus()
	}

	app.auth = services.NewAuthService(app.repos.Users, app.repos.Sessions, []byte(cfg.SecretKey), app.bus)
	app.quotes = services.NewQuoteService(app.repos.Quotes)
	app.seeder = services.NewSeedService(app.repos.Quotes)
	return app, nil
}

func (app *application) connectRedis() error {
	client := redis.NewClient(&redis.Options{
		Addr:     app.cfg.Redis.Addr,
		Password: app.cfg.Redis.Password,
		DB:       app.cfg.Redis.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("redis ping %s: %w", app.cfg.Redis.Addr, err)
	}

	bus, err := authevents.NewRedisBus(client, authevents.DefaultRedisChannel)
	if err != nil {
		_ = client.Close()
		return err
	}
	app.redis = client
	app.redisBus = bus
	app.bus = bus
	return nil
}

// runEventRelay forwards auth events from other instances until ctx ends.
func (app *application) runEventRelay(ctx context.Context) {
	if app.redisBus == nil {
		return
	}
	go func() {
		if err := app.redisBus.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("auth event relay stopped: %v", err)
		}
	}()
}

func (app *application) newSigner(ctx context.Context) (storage.Signer, *storage.LocalSigner, error) {
	if app.cfg.Storage.Driver == "s3" {
		signer, err := storage.NewS3Signer(ctx, storage.S3Config{
			Bucket:          app.cfg.Storage.Bucket,
			Region:          app.cfg.Storage.S3Region,
			Endpoint:        app.cfg.Storage.S3Endpoint,
			AccessKeyID:     app.cfg.Storage.S3AccessKeyID,
			SecretAccessKey: app.cfg.Storage.S3SecretAccessKey,
			ForcePathStyle:  app.cfg.Storage.S3ForcePathStyle,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("s3 signer init failed: %w", err)
		}
		return signer, nil, nil
	}

	local, err := storage.NewLocalSigner(app.cfg.Storage.Dir, app.cfg.PublicURL, []byte(app.cfg.SecretKey))
	if err != nil {
		return nil, nil, fmt.Errorf("local signer init failed: %w", err)
	}
	return local, local, nil
}

func (app *application) Close() {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			log.Printf("redis close failed: %v", err)
		}
	}
	if app.database == nil {
		return
	}
	sqlDB, err := app.database.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("database close failed: %v", err)
	}
}
