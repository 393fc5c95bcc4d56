// Package auth implements credential hashing, stateless token issuance and
// validation, and the per-request authentication step that produces the
// principal every store operation is scoped to.
package auth
