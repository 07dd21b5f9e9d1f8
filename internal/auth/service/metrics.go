package service

import (
	"github.com/postboard-app/postboard/backend/internal/observability/metrics"
)

func incrementUsersRegistered() {
	metrics.UsersRegistered.Inc()
}

func incrementLoginsSucceeded() {
	metrics.LoginsSucceeded.Inc()
}

func incrementLoginsFailed() {
	metrics.LoginsFailed.Inc()
}

func incrementTokensIssued() {
	metrics.TokensIssued.Inc()
}

func incrementTokenVerifications() {
	metrics.TokenVerificationsTotal.Inc()
}

func incrementTokenVerificationsFailed() {
	metrics.TokenVerificationsFailed.Inc()
}
