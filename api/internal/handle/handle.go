package handle

import (
	"encoding/json"
	"net/http"
	"time"

	"recipe-chef/api/internal/gdrive"
	"recipe-chef/api/internal/recipe"
	"recipe-chef/api/internal/session"
)

const (
	cookieName = "chef_session"

	msgNoIngredients = "재료를 입력해주세요!"
	msgBusy          = "이미 레시피를 만드는 중입니다."
	msgNoImage       = "저장할 이미지가 없습니다."
	msgAuthLoading   = "구글 서비스 로딩 중입니다. 잠시 후 다시 시도해주세요."
	msgUploadBusy    = "이미 저장 중입니다."
	msgUploadFailed  = "구글 드라이브 업로드 중 오류가 발생했습니다."

	msgNotAuthorizing = "저장 요청이 만료되었습니다. 다시 시도해주세요."
)

type Handle struct {
	sessions  *session.Store
	recipes   *recipe.Service
	oauth     *gdrive.OAuth
	saver     *gdrive.Saver
	folderURL string

	// GenerateTimeout bounds one recipe request, text and image together.
	GenerateTimeout time.Duration
	// UploadTimeout bounds the token exchange plus the Drive upload.
	UploadTimeout time.Duration
	// SecureCookie marks the session cookie Secure (HTTPS deployments).
	SecureCookie bool
}

func New(sessions *session.Store, recipes *recipe.Service, oauth *gdrive.OAuth, saver *gdrive.Saver, folderURL string) *Handle {
	return &Handle{
		sessions:        sessions,
		recipes:         recipes,
		oauth:           oauth,
		saver:           saver,
		folderURL:       folderURL,
		GenerateTimeout: 3 * time.Minute,
		UploadTimeout:   time.Minute,
	}
}

type errorResponse struct {
	Error        string        `json:"error"`
	UploadStatus gdrive.Status `json:"upload_status,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, errorResponse{Error: msg})
}

// session returns the caller's session, issuing a cookie for a new one.
func (h *Handle) session(w http.ResponseWriter, r *http.Request) *session.Session {
	var id string
	if c, err := r.Cookie(cookieName); err == nil {
		id = c.Value
	}
	s := h.sessions.Ensure(id)
	if s.ID != id {
		http.SetCookie(w, &http.Cookie{
			Name:     cookieName,
			Value:    s.ID,
			Path:     "/",
			HttpOnly: true,
			Secure:   h.SecureCookie,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return s
}
