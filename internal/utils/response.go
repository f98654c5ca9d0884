package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Page is the envelope for paginated list responses.
type Page struct {
	Items           interface{} `json:"items"`
	PageNumber      int         `json:"pageNumber"`
	PageSize        int         `json:"pageSize"`
	TotalCount      int64       `json:"totalCount"`
	TotalPages      int         `json:"totalPages"`
	HasPreviousPage bool        `json:"hasPreviousPage"`
	HasNextPage     bool        `json:"hasNextPage"`
}

// NewPage builds a Page from a result window. Page number and size are
// normalized to the same bounds the repositories apply.
func NewPage(items interface{}, totalCount int64, pageNumber, pageSize int) Page {
	if pageNumber <= 0 {
		pageNumber = 1
	}
	if pageSize <= 0 {
		pageSize = 1
	}
	totalPages := int((totalCount + int64(pageSize) - 1) / int64(pageSize))
	return Page{
		Items:           items,
		PageNumber:      pageNumber,
		PageSize:        pageSize,
		TotalCount:      totalCount,
		TotalPages:      totalPages,
		HasPreviousPage: pageNumber > 1,
		HasNextPage:     pageNumber < totalPages,
	}
}

// JSON writes a success payload with the given status code.
func JSON(c *gin.Context, code int, data interface{}) {
	c.JSON(code, data)
}

// Error writes an error response body.
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorResponse{StatusCode: code, Message: message})
}

// ErrorWithDetails writes an error response with extra context attached.
// Details must never carry internals in production; callers gate on env.
func ErrorWithDetails(c *gin.Context, code int, message string, details interface{}) {
	c.JSON(code, ErrorResponse{StatusCode: code, Message: message, Details: details})
}

// HTTPStatus maps service errors to HTTP status codes. Domain conflicts and
// validation failures both map to 400, matching the admin dashboard contract.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrConflict),
		errors.Is(err, ErrVersionConflict),
		errors.Is(err, ErrCategoryInUse),
		errors.Is(err, ErrCategoryCycle):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidCredentials), errors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
