package adplatformdomain

import (
	"fmt"
	"net/http"
	"strings"
)

// APIError representa uma resposta não-2xx da plataforma de anúncios
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

// ErrorResponse é o corpo de erro que a plataforma costuma devolver
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func NewAPIError(statusCode int, status string, body []byte) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Status:     status,
		Body:       strings.TrimSpace(string(body)),
	}
}

func (e *APIError) Error() string {
	status := e.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}

	if msg := e.Message(); msg != "" {
		return fmt.Sprintf("ad platform returned %s: %s", status, msg)
	}
	return fmt.Sprintf("ad platform returned %s", status)
}

// Message extrai a mensagem do corpo de erro, se houver
func (e *APIError) Message() string {
	if e.Body == "" {
		return ""
	}

	var resp ErrorResponse
	if err := json.Unmarshal([]byte(e.Body), &resp); err != nil {
		return ""
	}

	if resp.Message != "" {
		return resp.Message
	}
	return resp.Error
}

// IsRateLimited indica HTTP 429
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}
