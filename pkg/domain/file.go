package domain

type FileKind string

const (
	FileKindImage FileKind = "image"
	FileKindPDF   FileKind = "pdf"
	FileKindText  FileKind = "text"
)

// UploadedFile carries exactly one payload representation: Data holds a base64
// data URL for image and pdf kinds, Content holds the decoded text for text
// kind. A file with neither set contributes nothing to a generation request.
type UploadedFile struct {
	ID      string   `json:"id,omitempty"`
	Name    string   `json:"name"`
	Kind    FileKind `json:"type"`
	Data    string   `json:"data,omitempty"`
	Content string   `json:"content,omitempty"`
}
