package gdrive

// Status tracks the optional save-to-Drive sequence.
type Status string

const (
	StatusIdle        Status = "idle"
	StatusAuthorizing Status = "authorizing"
	StatusUploading   Status = "uploading"
	StatusDone        Status = "done"
	StatusError       Status = "error"
)

// Busy reports whether a save is in flight and the trigger must stay disabled.
func (s Status) Busy() bool {
	return s == StatusAuthorizing || s == StatusUploading
}
