package storage

import (
	"context"
	"fmt"
	"io"
)

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ImportArchiveKey — ключ, под которым хранится исходная таблица загрузки.
func ImportArchiveKey(teamID int, batchID string) string {
	return fmt.Sprintf("imports/teams/%d/%s.xlsx", teamID, batchID)
}
