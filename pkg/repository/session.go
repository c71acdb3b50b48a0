package repository

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/clinsight/cdss-gateway/pkg/domain"
)

// Operation names for the per-session in-flight guard.
const (
	OpAnalysis = "analysis"
	OpChat     = "chat"
)

type sessionEntry struct {
	session    domain.Session
	lastUpdate time.Time
}

type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]sessionEntry
	inFlight map[string]struct{}
	ttl      time.Duration
}

// NewSessionRepository keeps sessions in memory. A ttl of zero disables
// expiry.
func NewSessionRepository(ttl time.Duration) *sessionRepository {
	return &sessionRepository{
		sessions: make(map[string]sessionEntry),
		inFlight: make(map[string]struct{}),
		ttl:      ttl,
	}
}

func (r *sessionRepository) Create() domain.Session {
	session := domain.Session{
		ID:         uuid.NewString(),
		Transcript: []domain.ChatMessage{},
	}
	r.Save(session)
	return session
}

func (r *sessionRepository) Save(session domain.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[session.ID] = sessionEntry{
		session:    session,
		lastUpdate: time.Now(),
	}
}

func (r *sessionRepository) GetByID(id string) (domain.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.sessions[id]
	if !ok {
		return domain.Session{}, false
	}

	if r.ttl > 0 && time.Since(entry.lastUpdate) > r.ttl {
		return domain.Session{}, false
	}

	return entry.session, true
}

func (r *sessionRepository) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
}

// StoreAnalysis merges a completed analysis into the live session entry.
// Transcript turns and files added while the analysis ran are preserved: the
// transcript is untouched and analyzed uploads are unioned into the current
// file list rather than replacing it.
func (r *sessionRepository) StoreAnalysis(sessionID string, patient domain.PatientData, uploads []domain.UploadedFile, result domain.DiagnosisResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.sessions[sessionID]
	if !ok {
		return
	}

	entry.session.Patient = patient
	entry.session.Result = &result

	known := make(map[string]struct{}, len(entry.session.Files))
	for _, f := range entry.session.Files {
		known[fileKey(f)] = struct{}{}
	}
	for _, f := range uploads {
		if _, dup := known[fileKey(f)]; !dup {
			entry.session.Files = append(entry.session.Files, f)
		}
	}

	entry.lastUpdate = time.Now()
	r.sessions[sessionID] = entry
}

// AppendTranscript adds turns to the live session entry. Appending under the
// repository lock keeps the transcript append-only even while an analysis is
// rewriting the rest of the session.
func (r *sessionRepository) AppendTranscript(sessionID string, messages ...domain.ChatMessage) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.sessions[sessionID]
	if !ok {
		return
	}

	entry.session.Transcript = append(entry.session.Transcript, messages...)
	entry.lastUpdate = time.Now()
	r.sessions[sessionID] = entry
}

// AppendFiles adds uploaded files to the live session entry.
func (r *sessionRepository) AppendFiles(sessionID string, files ...domain.UploadedFile) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.sessions[sessionID]
	if !ok {
		return
	}

	entry.session.Files = append(entry.session.Files, files...)
	entry.lastUpdate = time.Now()
	r.sessions[sessionID] = entry
}

// RemoveFile drops one file from the live session entry; it reports whether
// the file was present.
func (r *sessionRepository) RemoveFile(sessionID, fileID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.sessions[sessionID]
	if !ok {
		return false
	}

	kept := lo.Reject(entry.session.Files, func(f domain.UploadedFile, _ int) bool {
		return f.ID == fileID
	})
	if len(kept) == len(entry.session.Files) {
		return false
	}

	entry.session.Files = kept
	entry.lastUpdate = time.Now()
	r.sessions[sessionID] = entry
	return true
}

// Uploads arriving through the analyze request body may not carry IDs; the
// name stands in so re-analysis does not duplicate them.
func fileKey(f domain.UploadedFile) string {
	if f.ID != "" {
		return f.ID
	}
	return f.Name
}

// Sweep drops expired sessions and returns how many were removed.
func (r *sessionRepository) Sweep() int {
	if r.ttl <= 0 {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, entry := range r.sessions {
		if time.Since(entry.lastUpdate) > r.ttl {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Begin marks op as running for the session; it reports false when the same
// operation is already in flight. At most one analysis and one chat may run
// per session at a time.
func (r *sessionRepository) Begin(sessionID, op string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := sessionID + ":" + op
	if _, running := r.inFlight[key]; running {
		return false
	}
	r.inFlight[key] = struct{}{}
	return true
}

func (r *sessionRepository) End(sessionID, op string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.inFlight, sessionID+":"+op)
}
