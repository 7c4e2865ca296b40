package dto

// ErrorResponse cuerpo de error HTTP uniforme.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
