package dto

// Códigos de error de la API JSON.
const (
	CodeCompanyNotFound = "COMPANY_NOT_FOUND"
	CodeInvalidParams   = "INVALID_PARAMS"
	CodeForbidden       = "FORBIDDEN"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeNotFound        = "NOT_FOUND"
	CodeInternal        = "INTERNAL"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}
