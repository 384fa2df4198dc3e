// Package logger wraps a zap SugaredLogger behind package-level helpers.
// The level is atomic so it can be changed after the configuration is parsed,
// and a logger can travel in a context to carry session-scoped fields
// such as the 3-D Secure session identifier.
package logger
