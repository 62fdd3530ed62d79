package main

import (
	"log"

	"anoa.com/fittrack/internal/bootstrap"
	"anoa.com/fittrack/internal/config"
	"anoa.com/fittrack/internal/server"
	"anoa.com/fittrack/pkg/database"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg := config.Load()

	db := database.Connect()
	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	if err := bootstrap.SeedRoles(db); err != nil {
		log.Fatalf("failed to seed roles: %v", err)
	}
	if cfg.AppEnv == "development" {
		if err := bootstrap.SeedAdminUser(db); err != nil {
			log.Fatalf("failed to seed admin user: %v", err)
		}
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	redisClient := redis.NewClient(redisOpts)

	srv := server.NewServer(db, redisClient)
	log.Printf("listening on :%s", cfg.Port)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
