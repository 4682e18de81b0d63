package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/abhisek/careerpath/internal/career"
	"github.com/abhisek/careerpath/internal/chat"
	"github.com/abhisek/careerpath/internal/learningplan"
	"github.com/abhisek/careerpath/internal/resume"
)

// Response is the envelope for every API reply.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func errorResponse(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func badRequest(c *gin.Context, message string) {
	errorResponse(c, http.StatusBadRequest, message)
}

func notFound(c *gin.Context, what string) {
	errorResponse(c, http.StatusNotFound, what+" not found")
}

// writeError maps service errors onto status codes. Anything unrecognized
// is logged and reported as an internal error.
func (s *Server) writeError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		badRequest(c, err.Error())
	case errors.Is(err, resume.ErrEmptyResume), errors.Is(err, chat.ErrEmptyMessage), errors.Is(err, career.ErrSameRole):
		badRequest(c, err.Error())
	case errors.Is(err, learningplan.ErrPreconditionMissing):
		errorResponse(c, http.StatusPreconditionFailed, err.Error())
	case errors.Is(err, chat.ErrAIUnavailable):
		errorResponse(c, http.StatusServiceUnavailable, chat.ErrAIUnavailable.Error())
	default:
		s.log.Error("request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"request_id", c.GetString(requestIDKey),
			"error", err,
		)
		errorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}
