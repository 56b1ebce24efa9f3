// Package logger provides structured logging for convokit using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers. Logs go to stderr by default so command output
// written to stdout stays clean.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("detect.gap")
//	log.Debug("gap inserted", logger.Fields("start", 1.2, "info", 0.5))
package logger
