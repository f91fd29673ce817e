// Package memory provides in-memory implementations of the driven ports.
// They back tests and ephemeral runs (HALDA_EPHEMERAL); nothing survives the process.
package memory
