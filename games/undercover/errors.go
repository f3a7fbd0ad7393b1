package undercover

import "errors"

// Validation errors are rejected before any state changes; not-found and
// illegal-state errors leave the game untouched. The engine never retries
// internally.
var (
	ErrInvalidDistribution = errors.New("role distribution does not match player count")
	ErrNoCivilians         = errors.New("at least one civilian is required")
	ErrNamePoolExhausted   = errors.New("player count exceeds the name pool")
	ErrGameNotFound        = errors.New("game not found")
	ErrPlayerNotFound      = errors.New("player not found")
	ErrSeatOutOfRange      = errors.New("seat index out of range")
	ErrGameCompleted       = errors.New("game is already completed")
	ErrAlreadyEliminated   = errors.New("player is already eliminated")
	ErrNotEliminatedWhite  = errors.New("only an eliminated Mr. White can guess")
)
