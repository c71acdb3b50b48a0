package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/clinsight/cdss-gateway/pkg/domain"
)

type fakeChatService struct {
	reply string
	err   error

	gotSessionID string
	gotMessage   string
}

func (f *fakeChatService) Send(_ context.Context, sessionID, message string) (string, error) {
	f.gotSessionID = sessionID
	f.gotMessage = message
	return f.reply, f.err
}

func TestChatHandlerSuccess(t *testing.T) {
	service := &fakeChatService{reply: "The finding is on the left lower lobe."}
	h := NewChat(service)

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"sessionId":"s1","message":"Where is the finding?"}`))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp chatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Reply != "The finding is on the left lower lobe." {
		t.Errorf("reply = %q", resp.Reply)
	}
	if service.gotSessionID != "s1" || service.gotMessage != "Where is the finding?" {
		t.Errorf("service got sessionID=%q message=%q", service.gotSessionID, service.gotMessage)
	}
}

func TestChatHandlerValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing session", `{"message":"hi"}`},
		{"missing message", `{"sessionId":"s1"}`},
		{"malformed body", `{`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := NewChat(&fakeChatService{})

			req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			h.Handle(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestChatHandlerErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"no analysis yet", domain.ErrNoAnalysis, http.StatusConflict},
		{"chat in flight", domain.ErrChatInFlight, http.StatusConflict},
		{"unknown session", domain.ErrSessionNotFound, http.StatusNotFound},
		{"rate limited", &domain.UpstreamError{StatusCode: http.StatusTooManyRequests, Status: "Too Many Requests"}, http.StatusTooManyRequests},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := NewChat(&fakeChatService{err: tc.err})

			req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"sessionId":"s1","message":"hi"}`))
			rec := httptest.NewRecorder()
			h.Handle(rec, req)

			if rec.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
		})
	}
}
