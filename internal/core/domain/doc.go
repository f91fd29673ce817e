// Package domain defines the core business entities for halda.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Question: A survey question extracted from Q-coded text
//   - Option: An answer option belonging to a question
//   - Selection: A request to search the web for one answer option
//   - SearchResult: The reconciled outcome for one question/option key
//   - Session: A working set of parsed questions and merged results
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
