// Package browser drives a Chrome page through the DevTools protocol and
// exposes it as a 3-D Secure view.
//
// The page lifecycle (navigation start, content visible, load errors and
// progress) is translated from DevTools events into threeds.EventHandler
// calls, and requests sent to the callback URL are intercepted so their form
// body can be inspected before the request proceeds.
package browser
