package session

import (
	"sync"
	"time"

	"recipe-chef/api/internal/gdrive"
	"recipe-chef/api/internal/recipe"
)

// Session is one browser's recipe state and upload status.
type Session struct {
	ID string

	mu         sync.Mutex
	recipe     recipe.State
	upload     *gdrive.Tracker
	oauthState string
	lastSeen   time.Time
}

// Snapshot is a consistent copy of a session for rendering.
type Snapshot struct {
	Recipe       recipe.State  `json:"recipe"`
	UploadStatus gdrive.Status `json:"upload_status"`
}

// Locker guards the recipe state during a recommendation.
func (s *Session) Locker() sync.Locker { return &s.mu }

// Recipe is meant for recipe.Service.Recommend together with Locker.
func (s *Session) Recipe() *recipe.State { return &s.recipe }

func (s *Session) Upload() *gdrive.Tracker { return s.upload }

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	st := s.recipe
	s.mu.Unlock()
	return Snapshot{Recipe: st, UploadStatus: s.upload.Status()}
}

// Image returns the generated image data URL, if any.
func (s *Session) Image() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.recipe.HasImage() {
		return "", false
	}
	return *s.recipe.Image, true
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

func (s *Session) busy() bool {
	s.mu.Lock()
	loading := s.recipe.Loading
	s.mu.Unlock()
	return loading || s.upload.Status().Busy()
}
