package handle

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/apex/log"
	"golang.org/x/oauth2"

	"recipe-chef/api/internal/gdrive"
	"recipe-chef/api/internal/session"
)

type AuthorizeResponse struct {
	AuthURL string `json:"auth_url"`
}

// begin moves the session to authorizing, or answers why it cannot.
func (h *Handle) begin(w http.ResponseWriter, s *session.Session) bool {
	if _, ok := s.Image(); !ok {
		writeError(w, http.StatusConflict, msgNoImage)
		return false
	}
	if !h.oauth.Enabled() {
		writeError(w, http.StatusServiceUnavailable, msgAuthLoading)
		return false
	}
	if err := s.Upload().Begin(); err != nil {
		writeError(w, http.StatusConflict, msgUploadBusy)
		return false
	}
	return true
}

// Authorize starts the authorization-code flow for saving the current image.
func (h *Handle) Authorize(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	if !h.begin(w, s) {
		return
	}
	url, err := h.oauth.AuthURL(h.sessions.NewOAuthState(s))
	if err != nil {
		s.Upload().Fail()
		writeError(w, http.StatusServiceUnavailable, msgAuthLoading)
		return
	}
	writeJSON(w, http.StatusOK, AuthorizeResponse{AuthURL: url})
}

// Callback receives Google's redirect, exchanges the code and uploads.
// The browser always lands back on the page, which reads the status.
func (h *Handle) Callback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	s, ok := h.sessions.TakeOAuthState(q.Get("state"))
	if !ok {
		http.Error(w, "unknown or expired authorization state", http.StatusBadRequest)
		return
	}
	l := log.WithField("session", s.ID)

	if e := q.Get("error"); e != "" {
		l.WithField("oauth_error", e).Warn("authorization refused")
		s.Upload().Fail()
		http.Redirect(w, r, "/?upload=error", http.StatusFound)
		return
	}
	img, ok := s.Image()
	if !ok {
		s.Upload().Fail()
		http.Redirect(w, r, "/?upload=error", http.StatusFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.UploadTimeout)
	defer cancel()

	code := q.Get("code")
	_, err := h.saver.Complete(ctx, s.Upload(), img, func(ctx context.Context) (oauth2.TokenSource, error) {
		return h.oauth.Exchange(ctx, code)
	})
	if err != nil {
		l.WithError(err).Error("save to drive failed")
		http.Redirect(w, r, "/?upload=error", http.StatusFound)
		return
	}
	http.Redirect(w, r, "/?upload=done", http.StatusFound)
}

type UploadRequest struct {
	AccessToken string `json:"access_token"`
}

type UploadResponse struct {
	FileID       string        `json:"file_id"`
	WebViewLink  string        `json:"web_view_link,omitempty"`
	UploadStatus gdrive.Status `json:"upload_status"`
}

// BeginUpload opens a browser token-client save. The page calls it right
// before showing the consent popup, then posts the token to Upload.
func (h *Handle) BeginUpload(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	if !h.begin(w, s) {
		return
	}
	writeJSON(w, http.StatusOK, h.stateResponse(s))
}

// Upload finishes a save opened by BeginUpload with the access token the
// browser token client returned. An empty token means the popup failed.
func (h *Handle) Upload(w http.ResponseWriter, r *http.Request) {
	var req UploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
		return
	}
	s := h.session(w, r)
	img, ok := s.Image()
	if !ok {
		writeError(w, http.StatusConflict, msgNoImage)
		return
	}
	if st := s.Upload().Status(); st != gdrive.StatusAuthorizing {
		writeJSON(w, http.StatusConflict, errorResponse{Error: msgNotAuthorizing, UploadStatus: st})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.UploadTimeout)
	defer cancel()

	f, err := h.saver.Complete(ctx, s.Upload(), img, func(context.Context) (oauth2.TokenSource, error) {
		return gdrive.BearerToken(req.AccessToken)
	})
	if err != nil {
		log.WithField("session", s.ID).WithError(err).Error("save to drive failed")
		code := http.StatusBadGateway
		if errors.Is(err, gdrive.ErrStale) {
			code = http.StatusConflict
		}
		writeJSON(w, code, errorResponse{Error: msgUploadFailed, UploadStatus: s.Upload().Status()})
		return
	}
	writeJSON(w, http.StatusOK, UploadResponse{
		FileID:       f.Id,
		WebViewLink:  f.WebViewLink,
		UploadStatus: s.Upload().Status(),
	})
}

// ResetUpload acknowledges a finished or failed save.
func (h *Handle) ResetUpload(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	if s.Upload().Status().Busy() {
		writeError(w, http.StatusConflict, msgUploadBusy)
		return
	}
	s.Upload().Reset()
	writeJSON(w, http.StatusOK, h.stateResponse(s))
}
