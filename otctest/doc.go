// Package otctest provides helpers for testing handlers and applications
// of the exchange without a running node.
package otctest
