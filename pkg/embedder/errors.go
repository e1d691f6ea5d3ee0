package embedder

import "errors"

// Common embedding client errors
var (
	// ErrRateLimit indicates the rate limit has been exceeded
	ErrRateLimit = errors.New("rate limit exceeded. Please try again later")

	// ErrMissingCredential indicates no API key was available at construction
	ErrMissingCredential = errors.New("no API key provided for embedding provider")

	// ErrEmptyResponse indicates the provider returned no embeddings
	ErrEmptyResponse = errors.New("the provider returned no embeddings")

	// ErrInvalidModel indicates an invalid model was specified
	ErrInvalidModel = errors.New("invalid embedding model specified")
)

// AuthenticationError indicates that no credential was resolvable when the
// client was constructed. It is raised synchronously and prevents creation.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	if e.Message == "" {
		return "no API key provided for embedding provider"
	}
	return e.Message
}

// Is implements errors.Is support for AuthenticationError.
// This allows errors.Is(err, &AuthenticationError{}) to work with wrapped errors.
func (e *AuthenticationError) Is(target error) bool {
	_, ok := target.(*AuthenticationError)
	return ok
}

// NewAuthenticationError creates a new authentication error with optional custom message
func NewAuthenticationError(message ...string) *AuthenticationError {
	err := &AuthenticationError{}
	if len(message) > 0 {
		err.Message = message[0]
	}
	return err
}

// DependencyMissingError indicates the requested provider implementation is
// not available. The message tells the caller what to install or enable.
type DependencyMissingError struct {
	Message string
}

func (e *DependencyMissingError) Error() string {
	return e.Message
}

// Is implements errors.Is support for DependencyMissingError.
// This allows errors.Is(err, &DependencyMissingError{}) to work with wrapped errors.
func (e *DependencyMissingError) Is(target error) bool {
	_, ok := target.(*DependencyMissingError)
	return ok
}

// NewDependencyMissingError creates a new dependency missing error (message is required)
func NewDependencyMissingError(message string) *DependencyMissingError {
	return &DependencyMissingError{Message: message}
}

// RateLimitError represents a rate limit error with optional custom message
type RateLimitError struct {
	Message string
}

func (e *RateLimitError) Error() string {
	if e.Message == "" {
		return "rate limit exceeded. Please try again later"
	}
	return e.Message
}

// Is implements errors.Is support for RateLimitError.
// This allows errors.Is(err, &RateLimitError{}) to work with wrapped errors.
func (e *RateLimitError) Is(target error) bool {
	_, ok := target.(*RateLimitError)
	return ok
}

// NewRateLimitError creates a new rate limit error with optional custom message
func NewRateLimitError(message ...string) *RateLimitError {
	err := &RateLimitError{}
	if len(message) > 0 {
		err.Message = message[0]
	}
	return err
}

// ProviderCallError represents a remote call that failed after all retries
// were exhausted. It wraps the last error observed.
type ProviderCallError struct {
	Message  string
	Attempts int
	Err      error
}

func (e *ProviderCallError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the last underlying error so callers can inspect it with
// errors.Is and errors.As.
func (e *ProviderCallError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support for ProviderCallError.
// This allows errors.Is(err, &ProviderCallError{}) to work with wrapped errors.
func (e *ProviderCallError) Is(target error) bool {
	_, ok := target.(*ProviderCallError)
	return ok
}

// NewProviderCallError creates a new provider call error wrapping the last
// error observed after the given number of attempts.
func NewProviderCallError(message string, attempts int, err error) *ProviderCallError {
	return &ProviderCallError{Message: message, Attempts: attempts, Err: err}
}
