// Package logging provides structured logging for Gray Logic Home.
//
// It wraps log/slog so every component logs with the same handler,
// level and default fields (service, version).
//
// Configuration comes from the logging section of config.yaml:
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "json"     # json, text
//	  output: "stdout"   # stdout, stderr
//
// Usage:
//
//	logger := logging.New(cfg.Logging, version)
//	logger.Info("room added", "room", "Hall")
//
// Never log MQTT passwords or other credentials.
package logging
