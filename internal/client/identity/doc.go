// Package identity signs users up and in against an Identity Toolkit
// compatible REST API and tracks the current session.
//
// Only the user id and email survive a successful call. The ID token is
// read once for its claims and dropped; nothing is refreshed or persisted,
// so a restarted client starts signed out.
//
// Failures are reported as *Error. Its message is one of a fixed set of
// user-facing strings chosen by Code; the provider's raw reason stays in
// the wrapped error for logs.
package identity
