package types

import "errors"

// Session-level error taxonomy. Remote call failures are not reclassified;
// they are wrapped with %w and surface the transport error unmodified.
var (
	// ErrMissingSigner is returned by transaction-issuing operations when the
	// session holds only a read-only capability. No remote call is attempted.
	ErrMissingSigner = errors.New("session has no signing capability")

	// ErrNotInitialized is returned when an operation needs a lazily-resolved
	// field (controller address, default user) before the readiness gate has
	// resolved.
	ErrNotInitialized = errors.New("session is not initialized")

	// ErrInitializationFailed marks a readiness gate that resolved with a
	// failure; the session must be reconstructed.
	ErrInitializationFailed = errors.New("session initialization failed")
)
