// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and repositories
// (defined in internal/store) to fulfill application features.
//
// Services receive their dependencies through constructor injection: the
// account service depends only on the store, password hasher, identifier
// generator, and token service contracts, never on concrete infrastructure.
// Errors crossing the service boundary are translated into *Error values
// carrying a kind, an HTTP status, and a client-safe message, so the API
// layer can map failures without inspecting storage internals.
package service
