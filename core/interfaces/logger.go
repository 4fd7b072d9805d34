package interfaces

// Logger is the structured logger passed to every component. Fields may be nil.
//
//	logger.Info("Validating candidate", map[string]interface{}{
//		"url": "https://example.com/feed.xml",
//	})
//
//	logger.Warn("Seed fetch failed", map[string]interface{}{
//		"url":   "https://example.com",
//		"error": err.Error(),
//	})
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Debug(string, map[string]interface{}) {}
func (NopLogger) Info(string, map[string]interface{})  {}
func (NopLogger) Warn(string, map[string]interface{})  {}
func (NopLogger) Error(string, map[string]interface{}) {}

// LoggerOrNop returns l, or a NopLogger when l is nil
func LoggerOrNop(l Logger) Logger {
	if l == nil {
		return NopLogger{}
	}
	return l
}
