// Package clients provides adapters for external services.
//
// The Trakt adapter implements the domain Tracker interface: watched-show
// history, rating events, catalog season summaries and the device-code
// token lifecycle. All calls support context cancellation.
package clients
