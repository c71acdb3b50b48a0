package domain

// Session scopes one patient case: the intake data it was created with, the
// uploaded files, the latest analysis result and the chat transcript.
// Transcript entries are append-only; the stored result is replaced wholesale
// when a new analysis completes.
type Session struct {
	ID         string           `json:"id"`
	Patient    PatientData      `json:"patientData"`
	Files      []UploadedFile   `json:"uploadedFiles"`
	Result     *DiagnosisResult `json:"result,omitempty"`
	Transcript []ChatMessage    `json:"transcript"`
}
