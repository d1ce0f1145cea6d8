// Package ui provides the terminal user interface for the drip advisor
// client.
//
// # Architecture Overview
//
// The UI is built on Bubble Tea's Model/Update/View loop. A single root Model
// owns the active view plus per-screen state structs; each screen lives in
// its own file with its key handler, its async commands, and its renderer.
//
// # Views
//
//   - Login / Register: credential forms with local validation
//   - Home: destination menu shown after sign-in
//   - Wardrobe: filtered, sorted item list with the two selection modes
//   - Add Clothing: photo path input with a file preview before upload
//   - Outfit Suggestions / Build an Outfit: weather form then outfit browser
//   - Profile: fetch-edit-save of the account profile and style preferences
//   - Weather: city lookup, cached into prefs for outfit prefill
//
// # Event Flow
//
//  1. Run() starts the Bubble Tea program in the alt screen
//  2. A 500ms tick animates the spinner and pulls state.Store snapshots
//  3. Screen submissions run as tea.Cmd closures hitting the advisor client
//  4. Results come back as typed messages handled centrally in Update
//  5. Any expired-session error resets navigation to the login screen
//
// # Request Handling
//
// One backend request runs at a time. While it is in flight the UI shows a
// spinner line and swallows input; after 45 seconds the line switches to a
// "taking longer than expected" notice without cancelling the request.
//
// # Key Bindings
//
//   - j/k, g/G: list navigation
//   - space: pick an available item as an outfit base
//   - m: select any item for delete / mark-available
//   - f, s, S: availability filter and the two sort directions
//   - u: wear the highlighted outfit (one-way)
//   - esc: back to home, ?: help, ctrl+t: theme, q / ctrl+c: quit
package ui
