package response

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/commandes-api/pkg/apperror"
	"github.com/sangkips/commandes-api/pkg/pagination"
)

// APIResponse is the envelope of every JSON body
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// Meta identifies the response in the logs
type Meta struct {
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id"`
}

// requestID prefers the id set by the request logger so the log line and
// the body carry the same value
func requestID(c *gin.Context) string {
	if id := c.GetString("request_id"); id != "" {
		return id
	}
	if id := c.GetHeader("X-Request-ID"); id != "" {
		return id
	}
	return uuid.NewString()
}

func send(c *gin.Context, status int, body APIResponse) {
	body.Meta = &Meta{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: requestID(c),
	}
	c.JSON(status, body)
}

func Success(c *gin.Context, status int, message string, data interface{}) {
	send(c, status, APIResponse{Success: true, Message: message, Data: data})
}

func OK(c *gin.Context, message string, data interface{}) {
	Success(c, http.StatusOK, message, data)
}

func Created(c *gin.Context, message string, data interface{}) {
	Success(c, http.StatusCreated, message, data)
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// SuccessWithPagination sends one page with its counters
func SuccessWithPagination[T any](c *gin.Context, status int, message string, result *pagination.PaginatedResult[T]) {
	Success(c, status, message, result)
}

// SuccessWithCursor sends one keyset page with its cursors
func SuccessWithCursor[T any](c *gin.Context, status int, message string, result *pagination.CursorPaginatedResult[T]) {
	Success(c, status, message, result)
}

// Attachment sends a binary download outside the envelope
func Attachment(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, contentType, data)
}

// Error maps err onto its status and message. Errors that are not an
// AppError become a bare 500; their cause goes to the request logger only.
func Error(c *gin.Context, err error) {
	appErr := apperror.GetAppError(err)
	if appErr.Code >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	body := APIResponse{Message: appErr.Message}
	if len(appErr.Errors) > 0 {
		body.Errors = appErr.Errors
	}
	send(c, appErr.Code, body)
}

// ErrorWithCode sends a failure without field errors
func ErrorWithCode(c *gin.Context, status int, message string) {
	send(c, status, APIResponse{Message: message})
}

func BadRequest(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusUnauthorized, message)
}

func TooManyRequests(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusTooManyRequests, message)
}

func InternalServerError(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusInternalServerError, message)
}
