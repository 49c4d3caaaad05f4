package config

import (
	"log"

	"github.com/joho/godotenv"
)

// LoadEnv 读取 .env（若存在），真实环境变量优先
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}
}
