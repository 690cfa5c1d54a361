package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func TooManyRequests(c *gin.Context, code, message string) {
	Write(c, http.StatusTooManyRequests, code, message)
}

// userMessenger é implementado por erros que já sabem se apresentar
// ao usuário (ex.: falhas do backend).
type userMessenger interface {
	UserMessage() string
}

// Message converte qualquer erro no texto exibido no toast.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var um userMessenger
	if errors.As(err, &um) {
		return um.UserMessage()
	}

	var be BusinessError
	if errors.As(err, &be) {
		msg := BusinessMessage(be.Code)
		if be.Detail != "" {
			msg += " " + be.Detail
		}
		return msg
	}

	return "Ocorreu um erro inesperado."
}

// Status escolhe o status HTTP de um erro para respostas JSON.
func Status(err error) int {
	var st interface{ HTTPStatus() int }
	if errors.As(err, &st) {
		return st.HTTPStatus()
	}

	var be BusinessError
	if errors.As(err, &be) {
		if be.Code == "forbidden" {
			return http.StatusForbidden
		}
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// Code escolhe o error_code das respostas JSON: o código de negócio
// quando existe; senão, um derivado do status.
func Code(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}

	var st interface{ HTTPStatus() int }
	if !errors.As(err, &st) {
		return "internal_error"
	}
	switch st.HTTPStatus() {
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not_found"
	default:
		return "backend_error"
	}
}

// Abort responde em JSON a partir de um erro qualquer.
func Abort(c *gin.Context, err error) {
	c.AbortWithStatusJSON(Status(err), HTTPError{Code: Code(err), Message: Message(err)})
}
