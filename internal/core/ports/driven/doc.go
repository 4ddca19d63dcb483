// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - RemoteStore: Lists folders and streams file bytes (Google Drive, local disk)
//   - Extractor: Turns one file format into plain text
//   - ExtractorRegistry: Selects the extractor for a file name and MIME type
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - TextDetector: OCR for raster images. Without it, images are skipped.
//   - LLMService: Language model. Without it, persona synthesis is disabled.
//   - PromptStore: Prompt templates. Without it, embedded defaults are used.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or extractor package
package driven
