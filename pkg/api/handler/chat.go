package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/clinsight/cdss-gateway/pkg/api/response"
)

type ChatService interface {
	Send(ctx context.Context, sessionID, message string) (string, error)
}

type chat struct {
	service ChatService
	writer  response.JSONWriter
}

func NewChat(service ChatService) *chat {
	return &chat{service: service}
}

type chatRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

func (h *chat) Handle(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writer.Error(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.SessionID == "" || req.Message == "" {
		h.writer.Error(w, http.StatusBadRequest, "sessionId and message are required")
		return
	}

	reply, err := h.service.Send(r.Context(), req.SessionID, req.Message)
	if err != nil {
		writeError(w, h.writer, err)
		return
	}

	h.writer.Success(w, chatResponse{Reply: reply})
}
