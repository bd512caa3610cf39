package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/dravail-api/pkg/errors"
)

// Response wraps all API responses
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Details interface{} `json:"details,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
}

// Pagination represents pagination metadata
type Pagination struct {
	Page      int `json:"page"`
	PageSize  int `json:"page_size"`
	Total     int `json:"total"`
	TotalPage int `json:"total_pages"`
}

// PaginatedResponse wraps paginated data
type PaginatedResponse struct {
	Items      interface{} `json:"items"`
	Pagination Pagination  `json:"pagination"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// RespondWithSuccess sends a success response
func RespondWithSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, NewSuccessResponse(data))
}

// RespondWithCreated sends a 201 with the created resource
func RespondWithCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, NewSuccessResponse(data))
}

// ErrorStatus returns the HTTP status and client message for err. Errors that
// are not an *errors.AppError are reported as a generic 500.
func ErrorStatus(err error) (int, *Response) {
	appErr, ok := errors.As(err)
	if !ok {
		return http.StatusInternalServerError, NewErrorResponse("internal server error")
	}

	status := appErr.StatusCode()
	resp := NewErrorResponse(appErr.Message)
	if status == http.StatusInternalServerError {
		resp.Message = "internal server error"
	}
	resp.Details = appErr.Details
	return status, resp
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, err error) {
	status, resp := ErrorStatus(err)
	c.JSON(status, resp)
}

// RespondWithPagination sends a paginated response
func RespondWithPagination(c *gin.Context, data interface{}, page, pageSize, total int) {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}

	c.JSON(http.StatusOK, NewSuccessResponse(PaginatedResponse{
		Items: data,
		Pagination: Pagination{
			Page:      page,
			PageSize:  pageSize,
			Total:     total,
			TotalPage: totalPages,
		},
	}))
}
