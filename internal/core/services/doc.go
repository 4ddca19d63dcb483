// Package services implements the driving port interfaces.
// Services contain the core business logic of the ingestion pipeline and
// orchestrate calls to driven ports (adapters): walking a remote folder,
// fetching each file, extracting its text under a deadline where needed,
// and combining the results for persona synthesis.
//
// Services are pure Go with no CGO dependencies.
package services
