package handler

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clinsight/cdss-gateway/pkg/api/response"
	"github.com/clinsight/cdss-gateway/pkg/domain"
	"github.com/clinsight/cdss-gateway/pkg/files"
)

// 25 MB per multipart upload request.
const maxUploadBytes = 25 << 20

type SessionRepository interface {
	GetByID(id string) (domain.Session, bool)
	Create() domain.Session
	AppendFiles(sessionID string, files ...domain.UploadedFile)
	RemoveFile(sessionID, fileID string) bool
	Delete(id string)
}

type session struct {
	sessions SessionRepository
	writer   response.JSONWriter
}

func NewSession(sessions SessionRepository) *session {
	return &session{sessions: sessions}
}

// Get returns the session snapshot: intake data, files, result, transcript.
func (h *session) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := h.sessions.GetByID(chi.URLParam(r, "sessionID"))
	if !ok {
		writeError(w, h.writer, domain.ErrSessionNotFound)
		return
	}

	h.writer.Success(w, s)
}

// UploadFiles ingests a multipart batch into the session and returns the
// stored descriptors. A sessionID of "new" starts a fresh session.
func (h *session) UploadFiles(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var s domain.Session
	if sessionID == "new" {
		s = h.sessions.Create()
	} else {
		var ok bool
		if s, ok = h.sessions.GetByID(sessionID); !ok {
			writeError(w, h.writer, domain.ErrSessionNotFound)
			return
		}
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.writer.Error(w, http.StatusBadRequest, "invalid multipart body: "+err.Error())
		return
	}

	var raw []files.RawFile
	for _, headers := range r.MultipartForm.File {
		for _, header := range headers {
			part, err := header.Open()
			if err != nil {
				h.writer.Error(w, http.StatusBadRequest, "reading uploaded file: "+err.Error())
				return
			}
			data, err := io.ReadAll(part)
			part.Close()
			if err != nil {
				h.writer.Error(w, http.StatusBadRequest, "reading uploaded file: "+err.Error())
				return
			}

			raw = append(raw, files.RawFile{
				Name:        header.Filename,
				ContentType: header.Header.Get("Content-Type"),
				Data:        data,
			})
		}
	}

	uploaded := files.Convert(raw)
	h.sessions.AppendFiles(s.ID, uploaded...)

	h.writer.Success(w, map[string]any{
		"sessionId": s.ID,
		"files":     uploaded,
	})
}

// DeleteFile removes one uploaded file from the session.
func (h *session) DeleteFile(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if _, ok := h.sessions.GetByID(sessionID); !ok {
		writeError(w, h.writer, domain.ErrSessionNotFound)
		return
	}

	fileID := chi.URLParam(r, "fileID")
	if !h.sessions.RemoveFile(sessionID, fileID) {
		h.writer.Error(w, http.StatusNotFound, "file not found")
		return
	}

	h.writer.Success(w, map[string]any{"deleted": fileID})
}

// Delete discards the whole session: intake data, files, result, transcript.
func (h *session) Delete(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if _, ok := h.sessions.GetByID(sessionID); !ok {
		writeError(w, h.writer, domain.ErrSessionNotFound)
		return
	}

	h.sessions.Delete(sessionID)

	h.writer.Success(w, map[string]any{"deleted": sessionID})
}
