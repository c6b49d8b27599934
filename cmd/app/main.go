package main

import (
	"github.com/riku-k061/travel-backend/config"
	"github.com/riku-k061/travel-backend/di"
	"github.com/riku-k061/travel-backend/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
