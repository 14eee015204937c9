package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/karolis-jablonskis/label-printer/internal/infrastructure/logger"
	"github.com/karolis-jablonskis/label-printer/internal/interfaces/http/dto"
)

// BaseHandler writes the response envelope shared by all label endpoints
type BaseHandler struct{}

func getRequestID(c *gin.Context) string {
	return c.GetString(logger.RequestIDKey)
}

// Success sends a 200 envelope with data
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Error sends an error envelope; the status follows from code
func (h *BaseHandler) Error(c *gin.Context, code, message string) {
	h.ErrorWithData(c, code, message, nil)
}

// ErrorWithData sends an error envelope that still carries a payload,
// such as the submission that failed to print
func (h *BaseHandler) ErrorWithData(c *gin.Context, code, message string, data any) {
	resp := dto.NewErrorResponseWithRequestID(code, message, getRequestID(c))
	resp.Data = data
	c.JSON(dto.GetHTTPStatus(code), resp)
}

// BadRequest sends a 400 envelope
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 envelope
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, dto.ErrCodeNotFound, message)
}
