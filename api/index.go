package handler

import (
	"net/http"

	"github.com/riku-k061/travel-backend/config"
	"github.com/riku-k061/travel-backend/di"
	"github.com/riku-k061/travel-backend/shared/logger"
)

// Handler is the serverless entrypoint; it builds the full service graph per
// cold start and serves each request through the regular router.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	service := di.InitializeService()
	service.Handler().ServeHTTP(w, r)
}
