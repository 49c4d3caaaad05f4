package app

import (
	"Gin_postgres_redis_asset_tracker/db"
	"Gin_postgres_redis_asset_tracker/session"
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// 简化别名，便于 handlers 调用
type Ctx = gin.Context
type H = gin.H

// App 聚合各依赖
type App struct {
	Router *gin.Engine
	DB     *gorm.DB
	RDB    *redis.Client
	Config Config

	appSess *session.AppSessionStore
}

// Config 从环境变量读取
type Config struct {
	RedisAddr  string
	RedisPwd   string
	WebOrigin  string
	SessionTTL time.Duration

	// 首个管理员（空则不自举）
	BootstrapUsername string
	BootstrapPassword string
	BootstrapName     string
}

func (a *App) AppSessions() *session.AppSessionStore { return a.appSess }

func MustNew() *App {
	cfg := loadConfig()

	// --- DB: Postgres ---
	dbConn := db.ConnectDB()

	// --- Redis ---
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPwd, DB: 0})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("redis: %v", err)
	}

	// --- Gin ---
	r := gin.Default()
	useCORS(r, cfg.WebOrigin)
	a := &App{
		Router: r, DB: dbConn, RDB: rdb, Config: cfg,
		appSess: session.NewAppSessionStore(rdb, cfg.SessionTTL),
	}
	return a
}

func (a *App) Close() { _ = a.RDB.Close() }

func loadConfig() Config {
	get := func(k, def string) string {
		v := os.Getenv(k)
		if v == "" {
			return def
		}
		return v
	}
	ttl := 24 * time.Hour
	if d, err := time.ParseDuration(get("SESSION_TTL_SECONDS", "86400") + "s"); err == nil {
		ttl = d
	}
	return Config{
		RedisAddr:  get("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPwd:   os.Getenv("REDIS_PASSWORD"),
		WebOrigin:  get("WEB_ORIGIN", "http://localhost:5173"),
		SessionTTL: ttl,

		BootstrapUsername: os.Getenv("BOOTSTRAP_ADMIN_USERNAME"),
		BootstrapPassword: os.Getenv("BOOTSTRAP_ADMIN_PASSWORD"),
		BootstrapName:     get("BOOTSTRAP_ADMIN_NAME", "Administrator"),
	}
}
