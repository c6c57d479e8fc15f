// Command seed loads users and dishes from JSON files into the database.
// Existing usernames and dish names are left untouched, so it is safe to
// run repeatedly.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"food-ordering-api/config"
	"food-ordering-api/models"
	"food-ordering-api/repository"
	"food-ordering-api/services"

	"go.uber.org/zap"
)

// seedUser carries a plain password; it is hashed before storage.
type seedUser struct {
	Username string      `json:"username"`
	Password string      `json:"password"`
	Email    *string     `json:"email"`
	Role     models.Role `json:"role"`
}

func main() {
	usersPath := flag.String("users", "priv/users.json", "JSON array of users to seed (empty to skip)")
	menuPath := flag.String("menu", "priv/menu.json", "JSON array of dishes to seed (empty to skip)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, err := config.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(context.Background(), cfg, log, *usersPath, *menuPath); err != nil {
		log.Fatal("seed failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger, usersPath, menuPath string) error {
	var raw []seedUser
	if err := readJSON(usersPath, &raw); err != nil {
		return err
	}
	var dishes []models.DishInput
	if err := readJSON(menuPath, &dishes); err != nil {
		return err
	}
	users, err := hashUsers(raw, services.BcryptHasher{Cost: cfg.Auth.BcryptCost})
	if err != nil {
		return err
	}

	db, err := config.OpenDB(cfg.DB)
	if err != nil {
		return err
	}
	if err := config.Migrate(db); err != nil {
		return err
	}

	res, err := repository.New(db, log).Seed(ctx, users, dishes)
	if err != nil {
		return err
	}
	log.Info("seeded",
		zap.Int64("users_inserted", res.Users),
		zap.Int("users_total", len(users)),
		zap.Int64("dishes_inserted", res.Dishes),
		zap.Int("dishes_total", len(dishes)),
	)
	return nil
}

// readJSON decodes path into dst. An empty path leaves dst untouched.
func readJSON(path string, dst any) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func hashUsers(in []seedUser, hasher services.PasswordHasher) ([]models.NewUser, error) {
	out := make([]models.NewUser, 0, len(in))
	for _, u := range in {
		if u.Password == "" {
			return nil, fmt.Errorf("user %q: password is required", u.Username)
		}
		hash, err := hasher.Hash(u.Password)
		if err != nil {
			return nil, fmt.Errorf("user %q: %w", u.Username, err)
		}
		role := u.Role
		if role == "" {
			role = models.RoleUser
		}
		out = append(out, models.NewUser{Username: u.Username, PasswordHash: hash, Email: u.Email, Role: role})
	}
	return out, nil
}
