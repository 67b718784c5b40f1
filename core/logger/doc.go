// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance for production (JSON) and operator
// (console) use, and integrates with the Fiber web framework.
//
// # Context Awareness
//
// WithRayID extracts the RayID assigned by the rayid middleware from a Fiber
// context and attaches it to the log entry, so every line written while
// serving one request can be correlated.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&cfg.Log)
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
