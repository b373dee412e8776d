package httputil

// Machine-readable error codes returned alongside error messages so clients
// do not have to parse human-readable text.
const (
	CodeInvalidRequestBody = "invalid_request_body"
	CodeValidationFailed   = "validation_failed"
	CodeUsernameTaken      = "username_taken"
	CodeNotFound           = "not_found"
	CodeInvalidCredentials = "invalid_credentials"
	CodeMissingAuth        = "missing_auth"
	CodeInvalidAuthHeader  = "invalid_auth_header"
	CodeInvalidToken       = "invalid_token"
	CodeTokenExpired       = "token_expired"
	CodeForbidden          = "forbidden"
	CodeInternalError      = "internal_error"
)
