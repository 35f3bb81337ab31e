// Package server provides the HTTP server exposing entrykit's bootstrap
// status endpoints.
package server
