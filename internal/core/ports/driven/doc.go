// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - ConfigStore: Application configuration (TOML file)
//   - SessionStore: Session and merged result persistence
//   - AudienceStore: Custom audience persistence
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - SearchProvider: Web search API. Without it, parsing still works but
//     every search call fails with domain.ErrProviderNotConfigured.
//   - DocumentReader: Converts .docx and .html survey exports to text.
//     Without it, input files are read as plain text.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
