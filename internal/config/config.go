package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Server   Server
	Postgres Postgres
	Redis    Redis
	Rakuten  Rakuten
	Bot      Bot
}

// Bot телеграм-бот: отчёты о прогонах сидера и админские команды.
// Без токена бот не поднимается.
type Bot struct {
	Token   string `env:"BOT_TOKEN" json:"-"`
	ChatID  int64  `env:"BOT_CHAT_ID"`
	AdminID int64  `env:"BOT_ADMIN_ID"`
}

func (b Bot) NotificationsEnabled() bool {
	return b.Token != "" && b.ChatID != 0
}

func (b Bot) AdminEnabled() bool {
	return b.Token != "" && b.AdminID != 0
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	return config, nil
}
