package ledger

import "errors"

var (
	// ErrNotFound: unknown ticket token or attendee id.
	ErrNotFound = errors.New("attendee not found")
	// ErrEmptyImport: zero rows survived mandatory-field filtering, the
	// whole import is rejected and nothing is written.
	ErrEmptyImport = errors.New("no importable rows")
	// ErrNoEvent: no default event wired to attach imported rows to.
	// Surfaced before any writes occur.
	ErrNoEvent = errors.New("no event configured for import")
	// ErrValidation wraps bad caller input on register/update.
	ErrValidation = errors.New("validation")
)
