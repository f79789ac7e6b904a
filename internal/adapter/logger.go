package adapter

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/openphoto-utils/internal/logger"
)

// restyLogger routes resty's output to the application logger. Debug output
// (the request and response dumps enabled by api.debug_http) is logged at
// info level.
type restyLogger struct {
	log *logger.Logger
}

func (l restyLogger) Errorf(format string, v ...any) {
	l.log.Error().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l restyLogger) Warnf(format string, v ...any) {
	l.log.Warn().Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l restyLogger) Debugf(format string, v ...any) {
	l.log.Info().Str("component", "http-debug").Msg(strings.TrimSpace(fmt.Sprintf(format, v...)))
}
