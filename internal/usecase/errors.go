package usecase

// Error codes surfaced to HTTP handlers. Handlers translate them to status
// codes; anything else is a 500.
const (
	CodeValidation  = "VALIDATION_ERROR"
	CodeRateLimited = "RATE_LIMITED"
	CodeAuth        = "AUTH_ERROR"
	CodeNotFound    = "NOT_FOUND"
	CodeUpload      = "UPLOAD_ERROR"
)

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// DomainErrorCode extracts the code, or "" for non-domain errors.
func DomainErrorCode(err error) string {
	if de, ok := err.(*DomainError); ok {
		return de.Code
	}
	return ""
}

type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}
