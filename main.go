// @title Podium de concours API
// @version 1.0
// @description Competition leaderboard backend: teams, challenges, scores, submissions and live updates

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	_ "github.com/Ahmedouyahya/Podium-de-concours/docs"

	"errors"
	"github.com/Ahmedouyahya/Podium-de-concours/api"
	"github.com/Ahmedouyahya/Podium-de-concours/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"io/fs"
)

func main() {
	// .env is optional, real environment wins
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logging.Log.Warnf("Failed to load .env: %v", err)
	}

	api.ConfigureViper()
	if err := viper.ReadInConfig(); err != nil {
		logging.Log.Warnf("No config file loaded, using environment and defaults: %v", err)
	}

	logging.BootstrapLogger(logging.Options{
		Level: viper.GetString("log.level"),
		File:  viper.GetString("log.file"),
	})

	// Read config
	config := api.ReadConfig()

	service := api.NewServer(config)
	service.Start()
}
