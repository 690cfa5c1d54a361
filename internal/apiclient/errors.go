package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError é uma resposta não-2xx do backend.
type APIError struct {
	Op      string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Message)
}

// UserMessage traduz a falha para o texto exibido no toast.
func (e *APIError) UserMessage() string {
	switch e.Status {
	case http.StatusUnauthorized:
		return "Sua sessão expirou. Por favor, faça login novamente."
	case http.StatusForbidden:
		return "Você não tem permissão para realizar esta ação."
	}
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("Erro no servidor (%d)", e.Status)
}

// HTTPStatus repassa erros do cliente (4xx) e converte falhas do
// backend em 502.
func (e *APIError) HTTPStatus() int {
	if e.Status >= 400 && e.Status < 500 {
		return e.Status
	}
	return http.StatusBadGateway
}

// TransportError cobre falhas antes de existir resposta (DNS, timeout).
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) UserMessage() string {
	return "Não foi possível conectar ao servidor."
}

func (e *TransportError) HTTPStatus() int {
	return http.StatusBadGateway
}

func IsStatus(err error, status int) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Status == status
}

func IsUnauthorized(err error) bool {
	return IsStatus(err, http.StatusUnauthorized)
}

func IsNotFound(err error) bool {
	return IsStatus(err, http.StatusNotFound)
}

// errorBody cobre o formato de erro do backend; message pode ser
// string ou lista (erros de validação).
type errorBody struct {
	Message    json.RawMessage `json:"message"`
	Error      string          `json:"error"`
	StatusCode int             `json:"statusCode"`
}

func decodeError(op string, status int, body []byte) *APIError {
	e := &APIError{Op: op, Status: status}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		e.Message = fmt.Sprintf("Erro no servidor (%d)", status)
		return e
	}

	e.Message = parseMessage(eb.Message)
	if e.Message == "" {
		e.Message = eb.Error
	}
	return e
}

func parseMessage(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return strings.Join(list, "; ")
	}
	return ""
}
