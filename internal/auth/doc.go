// Package auth holds the authentication boundary of the service: one-way
// password hashing, stateless signed identity tokens and the typed request
// context that carries the authenticated user id.
//
// Nothing in this package touches storage. The Hasher never reconstructs a
// plaintext and the TokenService keeps no per-token state, so verification is
// a pure function of the token and the signing secret.
package auth
