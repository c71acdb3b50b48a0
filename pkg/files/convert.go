// Package files turns raw uploads into the payload representations the
// generation request needs: base64 data URLs for images and PDFs, decoded
// text for text files.
package files

import (
	"encoding/base64"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/clinsight/cdss-gateway/pkg/domain"
)

type RawFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// Convert encodes every file concurrently and returns the results in input
// order. The batch is ready only once all conversions finish. Files of an
// unsupported kind are dropped with a warning; they never fail the batch.
func Convert(raw []RawFile) []domain.UploadedFile {
	converted := make([]*domain.UploadedFile, len(raw))

	var wg sync.WaitGroup
	wg.Add(len(raw))
	for i, f := range raw {
		go func(i int, f RawFile) {
			defer wg.Done()
			converted[i] = convertOne(f)
		}(i, f)
	}
	wg.Wait()

	out := make([]domain.UploadedFile, 0, len(raw))
	for _, f := range converted {
		if f != nil {
			out = append(out, *f)
		}
	}
	return out
}

func convertOne(f RawFile) *domain.UploadedFile {
	contentType := f.ContentType
	if contentType == "" {
		contentType = http.DetectContentType(f.Data)
	}
	contentType, _, _ = strings.Cut(contentType, ";")
	contentType = strings.TrimSpace(contentType)

	upload := domain.UploadedFile{
		ID:   uuid.NewString(),
		Name: f.Name,
	}

	switch {
	case strings.HasPrefix(contentType, "image/"):
		upload.Kind = domain.FileKindImage
		upload.Data = dataURL(contentType, f.Data)
	case contentType == "application/pdf":
		upload.Kind = domain.FileKindPDF
		upload.Data = dataURL(contentType, f.Data)
	case strings.HasPrefix(contentType, "text/") || contentType == "application/json":
		upload.Kind = domain.FileKindText
		upload.Content = string(f.Data)
	default:
		slog.Warn("Skipping file of unsupported type", "name", f.Name, "contentType", contentType)
		return nil
	}

	return &upload
}

func dataURL(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
