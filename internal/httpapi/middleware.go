package httpapi

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Leganyst/clinic-desk/internal/auth"
	"github.com/Leganyst/clinic-desk/internal/calendar"
)

const (
	ctxOperator  = "operator"
	ctxRequestID = "request_id"

	headerRequestID = "X-Request-ID"
)

// requestID пробрасывает или создаёт идентификатор запроса.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}

// requestLogger пишет одну строку на запрос; ошибки из c.Errors пишутся уровнем Error.
func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"request_id", c.GetString(ctxRequestID),
		}
		if op, ok := operatorFrom(c); ok {
			attrs = append(attrs, "staff_id", op.StaffID)
		}
		if len(c.Errors) > 0 {
			log.Error("http request", append(attrs, "error", c.Errors.String())...)
			return
		}
		log.Info("http request", attrs...)
	}
}

// authenticate проверяет Bearer-токен и загружает оператора из staff.
// Без tokens работает режим одного оператора: все запросы идут от администратора.
func authenticate(tokens *auth.Tokens, store calendar.OperatorStore) gin.HandlerFunc {
	if tokens == nil {
		desk := &calendar.Operator{Role: calendar.OperatorRoleAdmin, IsActive: true}
		return func(c *gin.Context) {
			c.Set(ctxOperator, desk)
			c.Next()
		}
	}

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "bearer") || token == "" {
			unauthorized(c, "bearer token required")
			return
		}

		claims, err := tokens.Parse(token)
		if err != nil {
			unauthorized(c, err.Error())
			return
		}

		op, err := calendar.ValidateOperator(c.Request.Context(), store, claims.StaffID)
		switch {
		case err == nil:
		case errors.Is(err, calendar.ErrOperatorNotFound),
			errors.Is(err, calendar.ErrOperatorInactive),
			errors.Is(err, calendar.ErrInvalidOperatorID):
			unauthorized(c, err.Error())
			return
		default:
			respondError(c, err)
			return
		}

		c.Set(ctxOperator, op)
		c.Next()
	}
}

// requireRole пропускает только операторов с одной из ролей. Ставится после authenticate.
func requireRole(roles ...calendar.OperatorRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		op, ok := operatorFrom(c)
		if !ok {
			unauthorized(c, "operator is not authenticated")
			return
		}
		for _, r := range roles {
			if op.Role == r {
				c.Next()
				return
			}
		}
		forbidden(c, "role "+string(op.Role)+" may not access this resource")
	}
}

func operatorFrom(c *gin.Context) (*calendar.Operator, bool) {
	v, exists := c.Get(ctxOperator)
	if !exists {
		return nil, false
	}
	op, ok := v.(*calendar.Operator)
	return op, ok
}
