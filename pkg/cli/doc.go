// Package cli provides output formatting and error types shared by the
// chatrelay command-line interface.
//
// Every subcommand prints the same JSON envelopes the HTTP API serves,
// so scripted callers can switch between the two transports without
// changing their parsing.
package cli
