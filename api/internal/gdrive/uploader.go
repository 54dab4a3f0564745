package gdrive

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/apex/log"
	"golang.org/x/oauth2"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"recipe-chef/api/internal/util"
)

type Uploader struct {
	FolderID string
	// Options are appended after the token source (endpoint overrides in tests).
	Options []option.ClientOption

	now func() time.Time
}

func NewUploader(folderID string) *Uploader {
	return &Uploader{FolderID: folderID, now: time.Now}
}

// Upload sends the data-URL image as a multipart create: a JSON metadata
// part with name, MIME type and parent folder, then the file bytes.
func (u *Uploader) Upload(ctx context.Context, ts oauth2.TokenSource, dataURL string) (*drive.File, error) {
	data, declared, err := util.DecodeDataURL(dataURL)
	if err != nil {
		return nil, fmt.Errorf("gdrive upload: %w", err)
	}
	mime := util.PickMIME(declared, data)

	opts := append([]option.ClientOption{option.WithTokenSource(ts)}, u.Options...)
	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gdrive upload: service: %w", err)
	}

	meta := &drive.File{
		Name:     fmt.Sprintf("Recipe_%d%s", u.clock().UnixMilli(), util.ExtForMIME(mime)),
		MimeType: mime,
	}
	if u.FolderID != "" {
		meta.Parents = []string{u.FolderID}
	}

	f, err := svc.Files.Create(meta).
		Media(bytes.NewReader(data), googleapi.ContentType(mime)).
		Fields("id", "name", "webViewLink").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("gdrive upload: %w", err)
	}
	log.WithFields(log.Fields{
		"file_id": f.Id,
		"name":    f.Name,
		"bytes":   len(data),
	}).Info("image saved to drive")
	return f, nil
}

func (u *Uploader) clock() time.Time {
	if u.now == nil {
		return time.Now()
	}
	return u.now()
}
