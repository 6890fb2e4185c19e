// Package errors provides the structured error type shared by sporeplan
// packages. Every reported failure carries a machine-readable code, a human
// message and optional details, and maps onto a CLI exit status.
package errors
