package gdrive

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"golang.org/x/oauth2"
	drive "google.golang.org/api/drive/v3"
)

// TokenFunc performs the token request of a save.
type TokenFunc func(ctx context.Context) (oauth2.TokenSource, error)

type FileUploader interface {
	Upload(ctx context.Context, ts oauth2.TokenSource, dataURL string) (*drive.File, error)
}

type Saver struct {
	up FileUploader
}

func NewSaver(up FileUploader) *Saver {
	return &Saver{up: up}
}

// Complete finishes a save the tracker already began: token request,
// uploading, upload, then done. Every failure leaves the tracker in error.
func (s *Saver) Complete(ctx context.Context, tr *Tracker, dataURL string, token TokenFunc) (*drive.File, error) {
	ts, err := token(ctx)
	if err != nil {
		tr.Fail()
		return nil, fmt.Errorf("gdrive token: %w", err)
	}
	if err := tr.Uploading(); err != nil {
		return nil, err
	}
	f, err := s.up.Upload(ctx, ts, dataURL)
	if err != nil {
		log.WithError(err).Error("drive upload failed")
		tr.Fail()
		return nil, err
	}
	tr.Done()
	return f, nil
}
