// Package cli provides the interactive accountkeeper command-line client.
//
// App wires configuration and the gRPC client into a small REPL. Commands
// map one to one onto the server operations: create, list, check, login
// and delete. A background watcher pings the health service and shows
// online/offline in the prompt.
package cli
