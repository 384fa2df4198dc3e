// Package authorize runs a complete 3-D Secure authorization in a browser.
//
// It launches a browser view, drives it with a threeds.Coordinator and waits
// until the session completes, the cardholder closes the window, the
// authorization timeout passes or the callback page is reached without a
// result.
package authorize
