// app/bootstrap.go
package app

import (
	"context"
	"log"

	"Gin_postgres_redis_asset_tracker/db"
	"Gin_postgres_redis_asset_tracker/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// BootstrapFirstAdmin 无管理员时用环境变量自举一个
func BootstrapFirstAdmin(ctx context.Context, cfg Config, repo *db.Repo) {
	if cfg.BootstrapUsername == "" || cfg.BootstrapPassword == "" {
		return
	}
	n, err := repo.CountAdmins(ctx)
	if err != nil {
		log.Printf("bootstrap: count admins: %v", err)
		return
	}
	if n > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.BootstrapPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("bootstrap: hash password: %v", err)
		return
	}
	u := &models.User{
		ID:           uuid.NewString(),
		Username:     cfg.BootstrapUsername,
		Name:         cfg.BootstrapName,
		Role:         models.RoleAdmin,
		PasswordHash: string(hash),
	}
	if err := repo.CreateUser(ctx, u); err != nil {
		log.Printf("bootstrap: create admin: %v", err)
		return
	}
	log.Printf("[BOOTSTRAP] created first admin %q", cfg.BootstrapUsername)
}
