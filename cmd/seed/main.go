package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/lielreyter/IDJ/internal/config"
	"github.com/lielreyter/IDJ/internal/db"
	"github.com/lielreyter/IDJ/internal/model"
	"github.com/lielreyter/IDJ/internal/repository"
)

// Development seeding: a couple of verified demo accounts and a handful of
// feed entries so the app has something to show on first run.
func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.Video{}, &model.Like{}, &model.Comment{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	videoRepo := repository.NewVideoRepository(gormDB)

	hash, err := bcrypt.GenerateFromPassword([]byte("Abcdef1!"), 10)
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}

	users := []*model.User{
		{ID: uuid.New(), Username: "demo_dj", Email: "demo@idj.app", PasswordHash: string(hash), Provider: model.ProviderLocal, IsEmailVerified: true},
		{ID: uuid.New(), Username: "vinyl_queen", Email: "vinyl@idj.app", PasswordHash: string(hash), Provider: model.ProviderLocal, IsEmailVerified: true},
	}

	created := 0
	for _, u := range users {
		if err := userRepo.Create(ctx, u); err != nil {
			log.Printf("Skipping user %s: %v", u.Username, err)
			continue
		}
		created++
	}
	log.Printf("Seeded %d users", created)

	videos := []*model.Video{
		{ID: uuid.New(), Title: "First spin", Description: "Warming up the decks", VideoURL: "https://cdn.idj.app/demo/first-spin.mp4", UserID: users[0].ID, Username: users[0].Username, Duration: 42},
		{ID: uuid.New(), Title: "Late night mix", VideoURL: "https://cdn.idj.app/demo/late-night.mp4", UserID: users[1].ID, Username: users[1].Username, Duration: 61},
		{ID: uuid.New(), Title: "Scratch practice", VideoURL: "https://cdn.idj.app/demo/scratch.mp4", UserID: users[0].ID, Username: users[0].Username, Duration: 28},
	}

	created = 0
	for _, v := range videos {
		if err := videoRepo.Create(ctx, v); err != nil {
			log.Printf("Skipping video %s: %v", v.Title, err)
			continue
		}
		created++
		time.Sleep(10 * time.Millisecond) // distinct createdAt ordering in the feed
	}
	log.Printf("Seeded %d videos", created)

	log.Println("Seed complete")
}
