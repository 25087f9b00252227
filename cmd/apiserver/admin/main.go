// Command admin is a small operator CLI against the same store as the API
// server. It exists for maintenance tasks that should not go through HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"socialnet/internal/auth"
	"socialnet/internal/config"
	"socialnet/internal/models"
	"socialnet/internal/storage"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: admin [-config path] <command> [args]

Commands:
  create-user <username> <email> <password>   create an account directly
  recount-friends                             recompute denormalized friend counts
`)
	os.Exit(2)
}

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		usage()
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := storage.InitDB(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := storage.AutoMigrateTables(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	ctx := context.Background()

	switch args[0] {
	case "create-user":
		if len(args) != 4 {
			usage()
		}
		username, email, password := args[1], args[2], args[3]

		hash, err := auth.HashPassword(password)
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}
		user := &models.User{
			Username:     username,
			Email:        email,
			PasswordHash: hash,
		}
		userRepo := storage.NewGormUserRepository(db)
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("failed to create user: %v", err)
		}
		fmt.Printf("created user %s (id %d)\n", user.Username, user.ID)

	case "recount-friends":
		relRepo := storage.NewGormRelationshipRepository(db)
		if err := relRepo.RecountFriends(ctx); err != nil {
			log.Fatalf("failed to recount friends: %v", err)
		}
		fmt.Println("friend counts recomputed")

	default:
		usage()
	}
}
