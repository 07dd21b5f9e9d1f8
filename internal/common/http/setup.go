package http

import (
	"net/http"

	"github.com/postboard-app/postboard/backend/internal/common/constants"
	"github.com/postboard-app/postboard/backend/internal/common/httpmetrics"
	"github.com/postboard-app/postboard/backend/internal/common/logger"
)

func BuildBaseHandler(log *logger.Logger, handler http.Handler) http.Handler {
	recovery := RecoveryMiddleware(log)
	traceID := TraceIDMiddleware
	maxRequestSize := MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)
	securityHeaders := SecurityHeadersMiddleware

	return securityHeaders(recovery(traceID(maxRequestSize(httpmetrics.Wrap(handler)))))
}
