package environment

import "errors"

// Error implements errors raised by environments. Op names the
// operation that failed.
type Error struct {
	Op  string
	Err error
}

// Error satisfies the error interface
func (e *Error) Error() string {
	return e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying error kind
func (e *Error) Unwrap() error {
	return e.Err
}

var (
	// ErrInvalidAction reports an action outside of the action spec
	ErrInvalidAction = errors.New("invalid action")

	// ErrEpisodeOver reports a step taken after the last TimeStep of
	// an episode without an intervening Reset
	ErrEpisodeOver = errors.New("episode is over, call Reset")
)

// IsInvalidAction returns whether or not an error reports that an
// illegal action was passed to an environment
func IsInvalidAction(err error) bool {
	return errors.Is(err, ErrInvalidAction)
}

// IsEpisodeOver returns whether or not an error reports that an
// environment was stepped after its episode ended
func IsEpisodeOver(err error) bool {
	return errors.Is(err, ErrEpisodeOver)
}
