// Package app provides the orchestration layer for the drip advisor client.
//
// # Overview
//
// This package wires together configuration, the saved session, the backend
// client, state management, and the UI to create the complete terminal
// experience. It serves as the composition root where all dependencies are
// initialized and connected.
//
// # Architecture
//
// The app package follows a simple initialization pattern:
//
//  1. Load client configuration from ~/.config/dripadvisor/config.toml
//  2. Open the debug log file (diagnostics cannot go to the terminal)
//  3. Restore the saved session token, degrading to signed-out on failure
//  4. Initialize the HTTP client for the drip advisor backend
//  5. Create a shared state.Store for UI and refresher coordination
//  6. Launch the background wardrobe refresher goroutine
//  7. Start the TUI and block until the user exits or the context cancels
//
// # Refresh Behavior
//
// The refresher runs continuously in the background at a configurable
// interval (default: 30 seconds). On each tick, while a session is active:
//
//   - Fetches the full wardrobe from the backend
//   - Updates the shared state.Store atomically
//   - Logs errors and backs off exponentially on repeated failure
//
// While signed out the refresher idles without network traffic. The UI reads
// snapshots from the store at its own pace, so it stays responsive even when
// the backend is slow.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Configuration file present but invalid
//   - Backend client initialization failure
//
// Recoverable errors (logged, startup continues):
//   - Unreadable session file (user signs in again)
//   - Unreadable preferences file (defaults apply)
//   - Debug log file cannot be opened (logging disabled)
//   - Periodic wardrobe fetch failures
//
// A cold start with no config, no prefs, and no session is the normal first
// run, not an error.
package app
