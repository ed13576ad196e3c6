package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/commandes-api/internal/presentation/http/dto/response"
	"github.com/sangkips/commandes-api/pkg/apperror"
	"github.com/sangkips/commandes-api/pkg/pagination"
)

const dateLayout = "2006-01-02"

// currentUser reads the admin id set by the auth middleware, answering 401
// when it is missing
func currentUser(c *gin.Context) (uuid.UUID, bool) {
	id, ok := c.Get("user_id")
	if userID, isID := id.(uuid.UUID); ok && isID {
		return userID, true
	}
	response.Unauthorized(c, "User not authenticated")
	return uuid.Nil, false
}

// paramID parses the :id path parameter, answering 400 when it is not a UUID
func paramID(c *gin.Context, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid "+resource+" ID")
		return uuid.Nil, false
	}
	return id, true
}

// parseDate reads a YYYY-MM-DD value as midnight UTC
func parseDate(field, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, apperror.NewFieldError(field, "must be a date formatted as YYYY-MM-DD")
	}
	return &t, nil
}

func pageParams(page, perPage int) *pagination.PaginationParams {
	return pagination.NewPaginationParams(page, perPage)
}
