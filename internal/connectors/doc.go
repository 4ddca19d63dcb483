// Package connectors provides implementations of the RemoteStore port
// for the places documents are read from. Each store knows how to list
// folders and stream file bytes for one backend (Google Drive, local disk).
//
// Stores are selected by cmd/persona at startup from the --source flag.
package connectors
