// Package advisor provides an HTTP client for the Drip Advisor backend API.
//
// # Overview
//
// This package defines the API client the terminal app uses to talk to the
// wardrobe backend. It handles HTTP communication, JSON and multipart
// serialization, bearer-token injection, and type-safe representation of the
// backend's payloads (profiles, clothing items, outfits, weather).
//
// # Architecture
//
// The package is split into two files:
//
//   - client.go: HTTP client implementation and request/response handling
//   - types.go: Data structures mirroring the backend API schema
//
// # Client Usage
//
// Create a client with the backend origin from configuration and a token
// source (normally the session store):
//
//	client, err := advisor.NewClient(cfg.BaseURL, sessions, logger)
//	if err != nil {
//		log.Fatalf("failed to create client: %v", err)
//	}
//
//	items, err := client.Wardrobe(ctx)
//	if err != nil {
//		log.Printf("wardrobe fetch failed: %v", err)
//	}
//
// # Authentication
//
// Every authenticated operation reads the current token from the TokenSource
// and sends it as "Authorization: Bearer <token>". The token is opaque to
// this package; no expiry tracking happens client-side. Expiry is detected
// reactively: a 401 response whose payload carries the backend's
// token-expired message maps to ErrSessionExpired, and callers react by
// clearing the session and returning to the login screen.
//
// # Error Handling
//
// The client distinguishes between several error types:
//
//   - Network errors: Connection refused, timeout, DNS failure (wrapped)
//   - ErrSessionExpired: The 401 token-expired payload shape
//   - *APIError: Any other 4xx/5xx, carrying the server's message verbatim
//   - Deserialization errors: Malformed JSON responses (wrapped)
//
// Example error messages:
//   - "execute request: dial tcp: connection refused"
//   - "api status 422: Weather description is required."
//   - "decode response: unexpected end of JSON input"
//
// # Guarantees
//
// Best effort, at most once per call: no retries, no idempotency keys, no
// request deduplication. Each request carries a generated X-Request-ID and is
// recorded in the debug log with its status and elapsed time.
//
// # Design Rationale
//
// The package is intentionally minimal:
//   - No caching (the state store mirrors the wardrobe)
//   - No retries (the user repeats the action)
//   - No client-side enforcement of the 48-hour unavailability window
//     (server-owned rule; the client only displays it)
package advisor
