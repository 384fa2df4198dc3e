// Package app provides the command handlers of the d3s CLI.
// It builds the browser-backed authorization service from the configuration,
// runs a single 3-D Secure authorization and writes the result document.
package app
