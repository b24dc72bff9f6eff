/* Copyright © 2025 The readline authors.
 * Use of this source code is governed by this module's license terms.
 */

// Package readline implements an asynchronous, concurrent line editor for
// interactive terminal programs.
//
// The editor coexists with background goroutines that print arbitrary
// output to the same terminal without corrupting the user's in-progress
// input line, and supports being paused (so a spinner or other
// indeterminate progress indicator can own the screen) and resumed
// (replaying any output that was queued while paused).
//
// The core type is Readline. Call New to construct one, obtain a
// SharedWriter to hand to background producers, and call ReadLine in a
// loop to retrieve completed input lines and user-interrupt events.
//
// This package does not implement rich line editing (kill-ring,
// bracketed paste), scrollback management, command completion,
// multi-line input beyond soft-wrap, or persistence of history to disk.
package readline
