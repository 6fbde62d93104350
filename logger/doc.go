// Package logger provides structured logging for lazykit using zerolog.
//
// It supports JSON and console output, per-logger level filtering, and
// component-scoped loggers. Loggers enriched with WithContext pick up the
// call id set by the logging combinator and the active trace/span ids, so
// every entry produced inside one wrapped call can be correlated.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("pipeline")
//	log.Info("fold finished", logger.Fields("count", 42))
package logger
