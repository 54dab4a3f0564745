package recipe

// State is the record behind one recipe request.
// Image and Error stay nil until set, so they encode as JSON null.
type State struct {
	Ingredients string  `json:"ingredients"`
	Loading     bool    `json:"loading"`
	Content     string  `json:"content"`
	Image       *string `json:"image"`
	Error       *string `json:"error"`
}

// begin clears the previous result and marks the request in flight.
func (s *State) begin(ingredients string) {
	s.Ingredients = ingredients
	s.Loading = true
	s.Content = ""
	s.Image = nil
	s.Error = nil
}

func (s *State) fail(msg string) {
	s.Loading = false
	s.Content = ""
	s.Image = nil
	s.Error = &msg
}

// HasImage reports whether a generated image is available for upload.
func (s *State) HasImage() bool {
	return s.Image != nil && *s.Image != ""
}
