package llm

import "errors"

// Failure sentinels. Every error a Client returns wraps one of them.
var (
	ErrProviderUnavailable = errors.New("llm provider unavailable")
	ErrTimeout             = errors.New("llm request timed out")
	ErrRetryExhausted      = errors.New("llm retry attempts exhausted")

	// ErrInvalidOutput means the reply was not the JSON shape the prompt
	// asked for.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// Configuration problems, raised before any request is sent.
	ErrMissingAPIKey   = errors.New("llm api key not configured")
	ErrUnknownProvider = errors.New("unknown llm provider")
)

// errorCodes is checked in order; the first sentinel err wraps wins.
var errorCodes = []struct {
	err  error
	code string
}{
	{ErrTimeout, "TIMEOUT"},
	{ErrProviderUnavailable, "UNAVAILABLE"},
	{ErrInvalidOutput, "INVALID_OUTPUT"},
	{ErrRetryExhausted, "RETRY_EXHAUSTED"},
	{ErrMissingAPIKey, "MISSING_KEY"},
	{ErrUnknownProvider, "UNKNOWN_PROVIDER"},
}

// errorCode is the short code reported in LLMCallEvent.ErrorCode.
func errorCode(err error) string {
	if err == nil {
		return ""
	}
	for _, c := range errorCodes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return "UNKNOWN"
}
