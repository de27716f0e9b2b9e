// Package workflows contains the business logic orchestrating the send
// operation, separated from CLI presentation.
//
// Workflows accept an Options struct, return a Result struct, and take a
// context for the network phase. The CLI layer handles spinners, colors,
// and exit codes; workflows only report what happened.
package workflows
