//go:build invariants

package invariants

// Enabled is true if we were built with the "invariants" build tag.
const Enabled = true
