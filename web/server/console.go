package server

import (
	"fmt"
	"log"

	"github.com/df07/go-blackhole-raytracer/pkg/core"
)

// WebLogger implements core.Logger by writing render progress to the
// server log, prefixed so frame output is distinguishable from request logs.
type WebLogger struct{}

// NewWebLogger creates a logger for render sessions started over HTTP
func NewWebLogger() core.Logger {
	return &WebLogger{}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	log.Printf("[render] %s", fmt.Sprintf(format, args...))
}
