package identity

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/dmitrijs2005/bothoster/internal/netx"
)

const (
	CodeEmailInUse     = "auth/email-already-in-use"
	CodeWeakPassword   = "auth/weak-password"
	CodeUserNotFound   = "auth/user-not-found"
	CodeWrongPassword  = "auth/wrong-password"
	CodeInvalidEmail   = "auth/invalid-email"
	CodeNetwork        = "auth/network-request-failed"
	CodeInternal       = "auth/internal-error"
	CodeMissingAPIKey  = "auth/invalid-api-key"
	CodeTooManyRetries = "auth/too-many-requests"
)

const GenericMessage = "An error occurred. Please try again."

var messages = map[string]string{
	CodeEmailInUse:    "Email already in use. Please try logging in.",
	CodeWeakPassword:  "Password should be at least 6 characters.",
	CodeUserNotFound:  "User not found. Please sign up first.",
	CodeWrongPassword: "Invalid password. Please try again.",
	CodeInvalidEmail:  "Invalid email address.",
}

// Message returns the user-facing text for a code.
func Message(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return GenericMessage
}

// Error is an identity failure with a provider-style code.
type Error struct {
	Code string
	Err  error
}

func (e *Error) Error() string { return Message(e.Code) }

func (e *Error) Unwrap() error { return e.Err }

// CodeOf returns the code carried by err, or "" when err is not an *Error.
func CodeOf(err error) string {
	var ie *Error
	if errors.As(err, &ie) {
		return ie.Code
	}
	return ""
}

// restCodes maps REST error reasons to codes. Reasons may carry a suffix
// ("WEAK_PASSWORD : Password should be at least 6 characters").
var restCodes = []struct {
	prefix string
	code   string
}{
	{"EMAIL_EXISTS", CodeEmailInUse},
	{"WEAK_PASSWORD", CodeWeakPassword},
	{"EMAIL_NOT_FOUND", CodeUserNotFound},
	{"INVALID_PASSWORD", CodeWrongPassword},
	{"INVALID_EMAIL", CodeInvalidEmail},
	{"MISSING_EMAIL", CodeInvalidEmail},
	{"API_KEY_INVALID", CodeMissingAPIKey},
	{"TOO_MANY_ATTEMPTS_TRY_LATER", CodeTooManyRetries},
}

func codeForReason(reason string) string {
	reason = strings.TrimSpace(reason)
	for _, rc := range restCodes {
		if strings.HasPrefix(reason, rc.prefix) {
			return rc.code
		}
	}
	return CodeInternal
}

type restError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// classify turns a transport error into an *Error.
func classify(err error) *Error {
	if errors.Is(err, netx.ErrTransport) {
		return &Error{Code: CodeNetwork, Err: err}
	}

	var se *netx.StatusError
	if errors.As(err, &se) {
		var body restError
		if jsonErr := json.Unmarshal(se.Body, &body); jsonErr == nil && body.Error.Message != "" {
			return &Error{Code: codeForReason(body.Error.Message), Err: err}
		}
	}
	return &Error{Code: CodeInternal, Err: err}
}
