// Package errors provides structured errors for the game engine.
//
// Errors carry a Code, a human-readable message, optional metadata, and an
// optional cause. Codes map onto HTTP status codes at the transport edge, so
// the core never imports transport packages to classify failures.
//
// Creating errors:
//
//	err := errors.NotFound("session not found")
//	err := errors.InvalidArgumentf("invalid dice notation: %s", notation)
//
// Checking errors:
//
//	if errors.IsNotFound(err) { ... }
//	status := errors.GetCode(err).HTTPStatus()
//
// Config validation uses the fluent builder:
//
//	vb := errors.NewValidationBuilder()
//	vb.RequiredField("Repository")
//	return vb.Build()
package errors
