package condrange

import "go.uber.org/zap"

// logger is used only by the construction-time owners of I/O (Config
// loading, Factory lookups); the pure query methods never touch it.
// Defaults to a no-op logger so importing condrange never produces output
// on its own.
var logger = zap.NewNop()

// SetLogger installs l as the package logger. Passing nil restores the
// no-op default.
func SetLogger(l *zap.Logger) {
	if l == nil {
		logger = zap.NewNop()
		return
	}
	logger = l
}
