package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/clinsight/cdss-gateway/pkg/domain"
	"github.com/clinsight/cdss-gateway/pkg/prompt"
	"github.com/clinsight/cdss-gateway/pkg/repository"
)

// apologyReply fills the model slot in the transcript when a chat call fails,
// so the conversation never shows a gap.
const apologyReply = "I'm sorry, I wasn't able to process that question. Please try asking again."

type chatService struct {
	generator Generator
	sessions  SessionRepository
}

func NewChatService(generator Generator, sessions SessionRepository) *chatService {
	return &chatService{
		generator: generator,
		sessions:  sessions,
	}
}

// Send asks a follow-up question about an analyzed case. The user turn is
// always appended to the transcript; on failure the model turn is the
// synthetic apology and the error is returned for the caller to surface.
func (s *chatService) Send(ctx context.Context, sessionID, message string) (string, error) {
	session, ok := s.sessions.GetByID(sessionID)
	if !ok {
		return "", domain.ErrSessionNotFound
	}
	if session.Result == nil {
		return "", domain.ErrNoAnalysis
	}

	if !s.sessions.Begin(sessionID, repository.OpChat) {
		return "", domain.ErrChatInFlight
	}
	defer s.sessions.End(sessionID, repository.OpChat)

	contextBlock := prompt.BuildChatContext(session.Patient, *session.Result)

	slog.InfoContext(ctx, "Requesting chat reply", "sessionID", sessionID, "historyLength", len(session.Transcript))

	reply, err := s.generator.Chat(ctx, contextBlock, session.Transcript, message)
	if err != nil {
		s.sessions.AppendTranscript(sessionID,
			domain.ChatMessage{Role: domain.ChatRoleUser, Content: message},
			domain.ChatMessage{Role: domain.ChatRoleModel, Content: apologyReply},
		)
		return "", fmt.Errorf("generating chat reply: %w", err)
	}

	s.sessions.AppendTranscript(sessionID,
		domain.ChatMessage{Role: domain.ChatRoleUser, Content: message},
		domain.ChatMessage{Role: domain.ChatRoleModel, Content: reply},
	)

	return reply, nil
}
