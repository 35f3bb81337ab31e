// Package healthcheck implements the startup barrier that gates the proxy
// on an upstream service's health endpoint.
//
// The barrier polls a fixed URL at a fixed interval until the endpoint
// responds with a success status. By default the wait is unbounded; the
// upstream staying down stalls the caller forever rather than producing a
// spurious failure.
package healthcheck
