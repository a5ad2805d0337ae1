package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"edemy/internal/auth"
	"edemy/internal/cart"
	"edemy/internal/config"
	"edemy/internal/diagnostics"
	"edemy/internal/enrollment"
	"edemy/internal/firebase"
	"edemy/internal/repository"
	rtr "edemy/internal/router"
	"edemy/internal/seed"
	"edemy/internal/server"
	"edemy/internal/textgen"

	"github.com/golang/glog"
	"github.com/redis/go-redis/v9"
)

// store is everything the server needs from the document store and the auth provider.
type store interface {
	rtr.CourseStore
	rtr.UserStore
	auth.Provider
	enrollment.Store
}

func main() {
	configPath := flag.String("config", os.Getenv("EDEMY_CONFIG"), "path to a YAML configuration file")
	flag.Parse()
	defer glog.Flush()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v\n", err)
	}
	config.Config = cfg

	ctx := context.Background()

	repo, seedOnStart, err := newStore(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Error creating repository: %v\n", err)
	}
	if seedOnStart {
		if err := repo.SeedCourses(ctx, seed.Courses()); err != nil {
			log.Fatalf("❌ Error seeding courses: %v\n", err)
		}
		log.Println("🌱 Seeded the placeholder catalog")
	}

	emitters := diagnostics.Multi{diagnostics.NewLogEmitter()}
	var carts cart.Store = cart.NewMemoryStore()
	if cfg.RedisAddr != "" {
		rdb, err := newRedisClient(ctx, cfg)
		if err != nil {
			log.Fatalf("❌ Error connecting to Redis: %v\n", err)
		}
		defer rdb.Close()

		carts = cart.NewRedisStore(rdb, cfg.CartTTL)
		emitters = append(emitters, diagnostics.NewRedisEmitter(rdb, cfg.DiagnosticsChannel))
	} else {
		log.Println("🙂️ No Redis configured. Carts are kept in memory.")
	}

	textGen := textgen.NewHTTPClient(cfg.TextGen.BaseURL, cfg.TextGen.APIKey, cfg.TextGen.Model, cfg.TextGen.Timeout)

	rt := rtr.New(repo, repo, repo, enrollment.NewService(repo, emitters), carts, textGen)
	server.Start(rt)
}

// newStore connects to Firebase when credentials are configured, and otherwise falls back to an in-memory
// store that always starts with the placeholder catalog.
func newStore(ctx context.Context, cfg *config.ServerConfig) (store, bool, error) {
	if cfg.FirebaseCredentialsFile == "" {
		log.Println("🙂️ No Firebase credentials configured. Using an in-memory store.")
		return repository.NewMemoryRepository(), true, nil
	}

	if err := firebase.Initialize(ctx, cfg.FirebaseCredentialsFile); err != nil {
		return nil, false, err
	}
	repo, err := repository.NewFirebaseRepository()
	if err != nil {
		return nil, false, err
	}
	return repo, cfg.SeedOnStart, nil
}

func newRedisClient(ctx context.Context, cfg *config.ServerConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        cfg.RedisAddr,
		Password:    cfg.RedisPassword,
		DB:          cfg.RedisDB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}
