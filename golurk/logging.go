package golurk

import (
	"sync/atomic"

	"github.com/go-logr/logr"
)

var fallbackLogger atomic.Pointer[logr.Logger]

// internalLogger is what the engine logs through when nothing more specific was given to a
// battle or service. It discards until SetInternalLogger is called.
func internalLogger() logr.Logger {
	if logger := fallbackLogger.Load(); logger != nil {
		return *logger
	}

	return logr.Discard()
}

// SetInternalLogger sets the engine wide fallback logger. It can be called while battles are running,
// but battles and registries keep the logger they were made with.
func SetInternalLogger(logger logr.Logger) {
	named := logger.WithName("golurk")
	fallbackLogger.Store(&named)
}
