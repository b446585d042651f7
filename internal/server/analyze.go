package server

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/engine"
)

const (
	codeInvalidRequest = "invalid_request"
	codeInvalidInput   = "invalid_input"
	codeInternal       = "internal"
)

type analyzeRequest struct {
	Resume         string `json:"resume" binding:"required,min=100,minwords=20"`
	JobDescription string `json:"job_description" binding:"required,min=50,minwords=10"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

var registerOnce sync.Once

// registerValidators extends gin's validator with the word count rule and
// reports fields by their JSON names.
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("minwords", minWords)
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

func minWords(fl validator.FieldLevel) bool {
	var n int
	if _, err := fmt.Sscan(fl.Param(), &n); err != nil {
		return false
	}
	return len(strings.Fields(fl.Field().String())) >= n
}

func (s *Server) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.bindError(c, err)
		return
	}

	for field, text := range map[string]string{
		engine.FieldResume:         req.Resume,
		engine.FieldJobDescription: req.JobDescription,
	} {
		if n := utf8.RuneCountInString(text); n > s.cfg.MaxChars {
			respondError(c, http.StatusRequestEntityTooLarge, codeInvalidInput,
				fmt.Sprintf("%s is %d characters, the limit is %d", field, n, s.cfg.MaxChars), field)
			return
		}
	}

	result, err := s.analyzer.Analyze(c.Request.Context(), req.Resume, req.JobDescription)
	if err != nil {
		var inputErr *engine.InputError
		if errors.As(err, &inputErr) {
			respondError(c, http.StatusUnprocessableEntity, codeInvalidInput, inputErr.Message, inputErr.Field)
			return
		}
		s.logger.Error("analysis failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, codeInternal, "analysis failed", "")
		return
	}

	c.Set("analysis_id", result.AnalysisID)
	c.JSON(http.StatusOK, result)
}

func (s *Server) bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		respondError(c, http.StatusBadRequest, codeInvalidRequest, "request body must be a JSON object", "")
		return
	}

	fe := verrs[0]
	var msg string
	switch fe.Tag() {
	case "required":
		msg = fmt.Sprintf("%s is required", fe.Field())
	case "min":
		msg = fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "minwords":
		msg = fmt.Sprintf("%s must contain at least %s words", fe.Field(), fe.Param())
	default:
		msg = fmt.Sprintf("%s is invalid", fe.Field())
	}
	respondError(c, http.StatusBadRequest, codeInvalidRequest, msg, fe.Field())
}

func respondError(c *gin.Context, status int, code, message, field string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{Code: code, Message: message, Field: field},
	})
}
