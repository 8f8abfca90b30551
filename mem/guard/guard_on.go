//go:build !noguard

package guard

// Enabled reports whether guard markers are used by default.
const Enabled = true
