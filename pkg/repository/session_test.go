package repository

import (
	"testing"
	"time"

	"github.com/clinsight/cdss-gateway/pkg/domain"
)

func TestCreateAndGet(t *testing.T) {
	repo := NewSessionRepository(0)

	session := repo.Create()
	if session.ID == "" {
		t.Fatal("created session has no ID")
	}
	if session.Transcript == nil {
		t.Error("transcript should start as an empty slice")
	}

	got, ok := repo.GetByID(session.ID)
	if !ok {
		t.Fatal("created session not found")
	}
	if got.ID != session.ID {
		t.Errorf("got session %q, want %q", got.ID, session.ID)
	}
}

func TestSaveUpdates(t *testing.T) {
	repo := NewSessionRepository(0)

	session := repo.Create()
	session.Transcript = append(session.Transcript, domain.ChatMessage{Role: domain.ChatRoleUser, Content: "hello"})
	repo.Save(session)

	got, _ := repo.GetByID(session.ID)
	if len(got.Transcript) != 1 || got.Transcript[0].Content != "hello" {
		t.Errorf("transcript = %+v", got.Transcript)
	}
}

func TestGetUnknownID(t *testing.T) {
	repo := NewSessionRepository(0)
	if _, ok := repo.GetByID("missing"); ok {
		t.Error("expected lookup miss for unknown ID")
	}
}

func TestTTLExpiry(t *testing.T) {
	repo := NewSessionRepository(10 * time.Millisecond)

	session := repo.Create()
	time.Sleep(25 * time.Millisecond)

	if _, ok := repo.GetByID(session.ID); ok {
		t.Error("expected session to be expired")
	}

	if removed := repo.Sweep(); removed != 1 {
		t.Errorf("Sweep() = %d, want 1", removed)
	}
}

func TestSweepKeepsFreshSessions(t *testing.T) {
	repo := NewSessionRepository(time.Hour)

	session := repo.Create()
	if removed := repo.Sweep(); removed != 0 {
		t.Errorf("Sweep() = %d, want 0", removed)
	}
	if _, ok := repo.GetByID(session.ID); !ok {
		t.Error("fresh session should survive a sweep")
	}
}

func TestInFlightGuard(t *testing.T) {
	repo := NewSessionRepository(0)

	if !repo.Begin("s1", OpAnalysis) {
		t.Fatal("first Begin should succeed")
	}
	if repo.Begin("s1", OpAnalysis) {
		t.Error("second Begin for the same operation should fail")
	}
	if !repo.Begin("s1", OpChat) {
		t.Error("a different operation on the same session should be allowed")
	}
	if !repo.Begin("s2", OpAnalysis) {
		t.Error("the same operation on a different session should be allowed")
	}

	repo.End("s1", OpAnalysis)
	if !repo.Begin("s1", OpAnalysis) {
		t.Error("Begin should succeed again after End")
	}
}

func TestStoreAnalysisKeepsConcurrentWrites(t *testing.T) {
	repo := NewSessionRepository(0)

	session := repo.Create()
	repo.AppendTranscript(session.ID, domain.ChatMessage{Role: domain.ChatRoleUser, Content: "hello"})
	repo.AppendFiles(session.ID, domain.UploadedFile{ID: "late", Name: "late.png", Kind: domain.FileKindImage})

	uploads := []domain.UploadedFile{{ID: "early", Name: "early.txt", Kind: domain.FileKindText, Content: "notes"}}
	repo.StoreAnalysis(session.ID, domain.PatientData{Age: 45}, uploads, domain.DiagnosisResult{Urgency: domain.UrgencyHigh})

	got, _ := repo.GetByID(session.ID)
	if got.Result == nil || got.Result.Urgency != domain.UrgencyHigh {
		t.Errorf("result = %+v", got.Result)
	}
	if got.Patient.Age != 45 {
		t.Errorf("patient = %+v", got.Patient)
	}
	if len(got.Transcript) != 1 {
		t.Errorf("transcript = %+v, want the appended turn kept", got.Transcript)
	}
	if len(got.Files) != 2 {
		t.Errorf("files = %+v, want both uploads", got.Files)
	}
}

func TestStoreAnalysisDeduplicatesUploads(t *testing.T) {
	repo := NewSessionRepository(0)

	session := repo.Create()
	repo.AppendFiles(session.ID, domain.UploadedFile{ID: "f1", Name: "scan.png", Kind: domain.FileKindImage})

	// Re-analysis sends back the file list it was given.
	uploads := []domain.UploadedFile{
		{ID: "f1", Name: "scan.png", Kind: domain.FileKindImage},
		{Name: "notes.txt", Kind: domain.FileKindText, Content: "notes"},
	}
	repo.StoreAnalysis(session.ID, domain.PatientData{}, uploads, domain.DiagnosisResult{})
	repo.StoreAnalysis(session.ID, domain.PatientData{}, uploads, domain.DiagnosisResult{})

	got, _ := repo.GetByID(session.ID)
	if len(got.Files) != 2 {
		t.Errorf("files = %+v, want no duplicates across re-analyses", got.Files)
	}
}

func TestRemoveFile(t *testing.T) {
	repo := NewSessionRepository(0)

	session := repo.Create()
	repo.AppendFiles(session.ID,
		domain.UploadedFile{ID: "f1", Name: "a.txt", Kind: domain.FileKindText},
		domain.UploadedFile{ID: "f2", Name: "b.txt", Kind: domain.FileKindText},
	)

	if !repo.RemoveFile(session.ID, "f1") {
		t.Fatal("RemoveFile should report the file as removed")
	}
	if repo.RemoveFile(session.ID, "f1") {
		t.Error("removing an absent file should report false")
	}

	got, _ := repo.GetByID(session.ID)
	if len(got.Files) != 1 || got.Files[0].ID != "f2" {
		t.Errorf("files = %+v", got.Files)
	}
}

func TestDelete(t *testing.T) {
	repo := NewSessionRepository(0)

	session := repo.Create()
	repo.Delete(session.ID)

	if _, ok := repo.GetByID(session.ID); ok {
		t.Error("deleted session still present")
	}
}
