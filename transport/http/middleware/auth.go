package middleware

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/riku-k061/travel-backend/config"
	"github.com/riku-k061/travel-backend/infras/otel"
	"github.com/riku-k061/travel-backend/shared/constant"
	"github.com/riku-k061/travel-backend/shared/failure"
	"github.com/riku-k061/travel-backend/transport/http/response"
)

// AdminAuth guards the internal endpoints behind the shared admin key.
type AdminAuth interface {
	AdminKey(next http.Handler) http.Handler
}

type adminAuthImpl struct {
	config *config.Config
	otel   otel.Otel
}

func NewAdminAuthMiddleware(config *config.Config, otel otel.Otel) AdminAuth {
	return &adminAuthImpl{
		config: config,
		otel:   otel,
	}
}

// AdminKey requires the api_key header to carry the configured secret. A
// missing header is a validation failure; a wrong one is unauthorized.
func (m *adminAuthImpl) AdminKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "admin-key.middleware")
		defer scope.End()

		key := request.Header.Get(constant.RequestHeaderAPIKey)
		if key == "" {
			err := failure.UnprocessableEntity("api_key header is required")
			scope.TraceError(err)

			response.WithError(writer, err)

			return
		}

		if key != m.config.App.AdminAPIKey {
			err := failure.Unauthorized("Valid admin API key required for this endpoint")
			scope.TraceError(err)
			log.Warn().Str("path", request.URL.Path).Msg("rejected admin request with invalid api key")

			response.WithError(writer, err)

			return
		}

		next.ServeHTTP(writer, request)
	})
}
