package handler

import (
	"errors"
	"net/http"

	"github.com/clinsight/cdss-gateway/pkg/api/response"
	"github.com/clinsight/cdss-gateway/pkg/domain"
)

const (
	rateLimitMessage = "Rate limit exceeded. Please try again later."
	paymentMessage   = "Payment required. Please add credits to continue."
	parseMessage     = "Failed to parse clinical analysis response"
)

// writeError maps the error taxonomy onto HTTP. Rate-limit and billing
// failures keep their upstream status so the client can message them
// distinctly; every other upstream or parse failure collapses to 500.
func writeError(w http.ResponseWriter, writer response.JSONWriter, err error) {
	var upstreamErr *domain.UpstreamError
	if errors.As(err, &upstreamErr) {
		switch {
		case upstreamErr.RateLimited():
			writer.Error(w, http.StatusTooManyRequests, rateLimitMessage)
		case upstreamErr.PaymentRequired():
			writer.Error(w, http.StatusPaymentRequired, paymentMessage)
		default:
			writer.Error(w, http.StatusInternalServerError, upstreamErr.Error())
		}
		return
	}

	var parseErr *domain.ParseError
	if errors.As(err, &parseErr) {
		writer.Error(w, http.StatusInternalServerError, parseMessage)
		return
	}

	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		writer.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrNoAnalysis):
		writer.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrAnalysisInFlight), errors.Is(err, domain.ErrChatInFlight):
		writer.Error(w, http.StatusConflict, err.Error())
	default:
		writer.Error(w, http.StatusInternalServerError, err.Error())
	}
}
