package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/clinsight/cdss-gateway/pkg/domain"
	"github.com/clinsight/cdss-gateway/pkg/extract"
	"github.com/clinsight/cdss-gateway/pkg/logger"
	"github.com/clinsight/cdss-gateway/pkg/prompt"
	"github.com/clinsight/cdss-gateway/pkg/repository"

	"github.com/clinsight/cdss-gateway/pkg/analysis"
)

// Generator is the outbound side of the pipeline: both the Gemini and the
// gateway clients satisfy it.
type Generator interface {
	Analyze(ctx context.Context, segments []prompt.Segment) (string, error)
	Chat(ctx context.Context, contextBlock string, history []domain.ChatMessage, message string) (string, error)
}

type SessionRepository interface {
	Create() domain.Session
	GetByID(id string) (domain.Session, bool)
	StoreAnalysis(sessionID string, patient domain.PatientData, uploads []domain.UploadedFile, result domain.DiagnosisResult)
	AppendTranscript(sessionID string, messages ...domain.ChatMessage)
	Begin(sessionID, op string) bool
	End(sessionID, op string)
}

type analysisService struct {
	generator Generator
	sessions  SessionRepository
}

func NewAnalysisService(generator Generator, sessions SessionRepository) *analysisService {
	return &analysisService{
		generator: generator,
		sessions:  sessions,
	}
}

// Analyze runs the full pipeline: build segments, call the provider, extract
// the JSON candidate, decode and normalize, store the result in the session.
// On any failure the session keeps its previous state. An empty sessionID
// starts a new session.
func (s *analysisService) Analyze(ctx context.Context, sessionID string, patient domain.PatientData, uploads []domain.UploadedFile) (string, domain.DiagnosisResult, error) {
	session, err := s.resolveSession(sessionID)
	if err != nil {
		return "", domain.DiagnosisResult{}, err
	}

	if !s.sessions.Begin(session.ID, repository.OpAnalysis) {
		return session.ID, domain.DiagnosisResult{}, domain.ErrAnalysisInFlight
	}
	defer s.sessions.End(session.ID, repository.OpAnalysis)

	if len(uploads) == 0 {
		uploads = session.Files
	}

	segments := prompt.BuildSegments(patient, uploads)
	slog.InfoContext(ctx, "Requesting clinical analysis", "sessionID", session.ID, "segments", len(segments))

	raw, err := s.generator.Analyze(ctx, segments)
	if err != nil {
		return session.ID, domain.DiagnosisResult{}, fmt.Errorf("generating analysis: %w", err)
	}

	result, err := analysis.Decode(extract.JSON(raw))
	if err != nil {
		// Keep the raw reply in the log; it is the only trace of what the
		// model actually said.
		slog.ErrorContext(ctx, "Analysis reply did not decode", "sessionID", session.ID, "raw", raw, logger.Err(err))
		return session.ID, domain.DiagnosisResult{}, err
	}

	// Merged under the repository lock: chat turns and files added while the
	// provider call was running stay in the session.
	s.sessions.StoreAnalysis(session.ID, patient, uploads, result)

	slog.InfoContext(ctx, "Analysis stored", "sessionID", session.ID, "urgency", result.Urgency, "diagnoses", len(result.DifferentialDiagnoses))

	return session.ID, result, nil
}

func (s *analysisService) resolveSession(sessionID string) (domain.Session, error) {
	if sessionID == "" {
		return s.sessions.Create(), nil
	}

	session, ok := s.sessions.GetByID(sessionID)
	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return session, nil
}
