package handle

import (
	"net/http"

	"recipe-chef/api/internal/session"
)

type StateResponse struct {
	session.Snapshot
	FolderURL     string `json:"folder_url"`
	OAuthClientID string `json:"oauth_client_id,omitempty"`
}

func (h *Handle) stateResponse(s *session.Session) StateResponse {
	return StateResponse{
		Snapshot:      s.Snapshot(),
		FolderURL:     h.folderURL,
		OAuthClientID: h.oauth.ClientID(),
	}
}

// State reports the recipe and upload status the page renders.
func (h *Handle) State(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.stateResponse(h.session(w, r)))
}
