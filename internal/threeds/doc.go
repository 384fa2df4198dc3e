// Package threeds coordinates a single 3-D Secure (v1 and v2) authentication
// attempt running in a browser view.
//
// A Coordinator builds the ACS navigation request, classifies every page the
// view loads as either the merchant callback page or an ordinary ACS page,
// scans ordinary pages for the result fields and reports completion exactly
// once per session through a Listener.
//
// The view itself is abstract: anything able to navigate and hand back the
// page markup satisfies View, and anything producing lifecycle events drives
// the Coordinator through EventHandler.
package threeds
