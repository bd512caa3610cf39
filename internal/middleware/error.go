package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/dravail-api/pkg/httputil"
)

// ErrorHandler renders the last error a handler attached with c.Error.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		traceID := c.GetString(ContextRequestID)

		for _, e := range c.Errors {
			log.Error().
				Err(e.Err).
				Str("request_id", traceID).
				Str("path", c.Request.URL.Path).
				Str("method", c.Request.Method).
				Str("client_ip", c.ClientIP()).
				Msg("Request error")
		}

		if c.Writer.Written() {
			return
		}

		status, resp := httputil.ErrorStatus(c.Errors.Last().Err)
		if status == http.StatusInternalServerError {
			resp.Details = nil
		}
		resp.TraceID = traceID
		c.JSON(status, resp)
	}
}
