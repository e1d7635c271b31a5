package interfaces

import (
	"context"
	"time"
)

// AssetMetadata describes a previously uploaded binary asset (a logo). The
// runtime never reads the blob itself; it only consumes this record.
type AssetMetadata struct {
	AssetID    string    `json:"assetId"`
	URL        string    `json:"url"`
	MimeType   string    `json:"mimeType"`
	Width      *int      `json:"width,omitempty"`
	Height     *int      `json:"height,omitempty"`
	Bytes      int64     `json:"bytes"`
	SHA256     string    `json:"sha256"`
	UploadedAt time.Time `json:"uploadedAt"`
}

// AssetResolver looks up metadata for uploaded assets by identifier. It is
// the only contract the runtime holds against the blob store.
type AssetResolver interface {
	Resolve(ctx context.Context, assetID string) (*AssetMetadata, error)
}
