// Package domain defines the core business entities for persona.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - FileDescriptor: A leaf file discovered in a remote folder
//   - FetchedPayload: The bytes downloaded or exported for one file
//   - ExtractionResult: The tagged outcome of processing one file
//   - IngestionManifest: The per-file outcome ledger of one ingestion run
//   - Persona: The synthesised persona document and the run behind it
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
