package logging

import (
	"io"
	"os"

	"github.com/apex/log"
	"github.com/apex/log/handlers/json"
	"github.com/apex/log/handlers/text"
)

// Init installs the process-wide apex/log handler.
func Init(level string, asJSON bool) {
	setup(os.Stderr, level, asJSON)
}

func setup(w io.Writer, level string, asJSON bool) {
	if asJSON {
		log.SetHandler(json.New(w))
	} else {
		log.SetHandler(text.New(w))
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
}
