package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Leganyst/clinic-desk/internal/service"
)

// Response — единый конверт всех JSON-ответов.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Field   string `json:"field,omitempty"`
}

func ok(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, Response{Status: http.StatusOK, Message: message, Data: data})
}

func created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, Response{Status: http.StatusCreated, Message: message, Data: data})
}

func fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, Response{
		Status:  status,
		Message: http.StatusText(status),
		Error:   msg,
	})
}

func badRequest(c *gin.Context, msg string)   { fail(c, http.StatusBadRequest, msg) }
func unauthorized(c *gin.Context, msg string) { fail(c, http.StatusUnauthorized, msg) }
func forbidden(c *gin.Context, msg string)    { fail(c, http.StatusForbidden, msg) }

// statusOf сопоставляет класс ошибки сервиса с HTTP-кодом.
func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrPrecondition), errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError отвечает по классу ошибки; внутренние ошибки не раскрываются клиенту.
func respondError(c *gin.Context, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		fail(c, status, "internal error")
		return
	}

	resp := Response{Status: status, Message: http.StatusText(status), Error: err.Error()}
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		resp.Field = ve.Field
	}
	c.AbortWithStatusJSON(status, resp)
}
