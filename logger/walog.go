package logger

import (
	"fmt"
	"log/slog"

	waLog "go.mau.fi/whatsmeow/util/log"
)

// WhatsApp adapts slog to the logger interface whatsmeow expects.
func WhatsApp(l *slog.Logger, module string) waLog.Logger {
	return &waLogger{logger: l.With(slog.String("module", module))}
}

type waLogger struct {
	logger *slog.Logger
}

func (w *waLogger) Errorf(msg string, args ...interface{}) {
	w.logger.Error(fmt.Sprintf(msg, args...))
}

func (w *waLogger) Warnf(msg string, args ...interface{}) {
	w.logger.Warn(fmt.Sprintf(msg, args...))
}

func (w *waLogger) Infof(msg string, args ...interface{}) {
	w.logger.Info(fmt.Sprintf(msg, args...))
}

func (w *waLogger) Debugf(msg string, args ...interface{}) {
	w.logger.Debug(fmt.Sprintf(msg, args...))
}

func (w *waLogger) Sub(module string) waLog.Logger {
	return &waLogger{logger: w.logger.With(slog.String("sub", module))}
}
