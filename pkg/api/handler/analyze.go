package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/clinsight/cdss-gateway/pkg/api/response"
	"github.com/clinsight/cdss-gateway/pkg/domain"
)

type AnalysisService interface {
	Analyze(ctx context.Context, sessionID string, patient domain.PatientData, uploads []domain.UploadedFile) (string, domain.DiagnosisResult, error)
}

type analyze struct {
	service AnalysisService
	writer  response.JSONWriter
}

func NewAnalyze(service AnalysisService) *analyze {
	return &analyze{service: service}
}

type analyzeRequest struct {
	SessionID     string                `json:"sessionId"`
	PatientData   domain.PatientData    `json:"patientData"`
	UploadedFiles []domain.UploadedFile `json:"uploadedFiles"`
}

type analyzeResponse struct {
	SessionID string                 `json:"sessionId"`
	Result    domain.DiagnosisResult `json:"result"`
}

func (h *analyze) Handle(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writer.Error(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	sessionID, result, err := h.service.Analyze(r.Context(), req.SessionID, req.PatientData, req.UploadedFiles)
	if err != nil {
		writeError(w, h.writer, err)
		return
	}

	h.writer.Success(w, analyzeResponse{SessionID: sessionID, Result: result})
}
