// Package main provides account management utilities for ModelHub.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"modelhub/internal/config"
	"modelhub/internal/database"
	"modelhub/internal/models"
	"modelhub/internal/validation"

	"gorm.io/gorm"
)

// errUsage is returned when the command line is incomplete.
var errUsage = errors.New("usage")

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stdout)
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := run(db, os.Stdout, os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			printUsage(os.Stdout)
		} else {
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  go run ./cmd/admin/main.go deactivate <email>   - Block a user from logging in")
	fmt.Fprintln(w, "  go run ./cmd/admin/main.go activate <email>     - Restore a deactivated user")
	fmt.Fprintln(w, "  go run ./cmd/admin/main.go list-inactive        - List deactivated users")
}

func run(db *gorm.DB, w io.Writer, args []string) error {
	switch args[0] {
	case "deactivate", "activate":
		if len(args) < 2 {
			return errUsage
		}
		return setActive(db, w, args[1], args[0] == "activate")
	case "list-inactive":
		return listInactive(db, w)
	default:
		return fmt.Errorf("unknown command: %s", args[0])
	}
}

func setActive(db *gorm.DB, w io.Writer, email string, active bool) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validation.ValidateEmail(email); err != nil {
		return err
	}

	var user models.User
	if err := db.Where("LOWER(email) = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("user with email %s not found", email)
		}
		return fmt.Errorf("database error: %w", err)
	}

	state := "inactive"
	if active {
		state = "active"
	}
	if user.IsActive == active {
		fmt.Fprintf(w, "User %s (ID: %s) is already %s\n", user.Username, user.ID, state)
		return nil
	}

	// Update by column: false is the zero value and would be skipped by Save with a default.
	if err := db.Model(&user).Update("is_active", active).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	fmt.Fprintf(w, "User %s (ID: %s) is now %s\n", user.Username, user.ID, state)
	return nil
}

func listInactive(db *gorm.DB, w io.Writer) error {
	var users []models.User
	if err := db.Where("is_active = ?", false).Order("created_at").Find(&users).Error; err != nil {
		return fmt.Errorf("failed to fetch users: %w", err)
	}

	if len(users) == 0 {
		fmt.Fprintln(w, "No inactive users")
		return nil
	}
	for _, u := range users {
		fmt.Fprintf(w, "ID: %s | Username: %s | Email: %s\n", u.ID, u.Username, u.Email)
	}
	return nil
}
