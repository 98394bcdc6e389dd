package http

import (
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	HeaderRequestID  = "X-Request-Id"
	RequestIDContext = "request_id"
)

// RequestID tags each request with an id, reusing X-Request-Id when the
// caller sent one. The id is also exposed as a LambdaContext so the invoke
// engine sees the same shape it gets from the Lambda runtime.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.New().String()
		}

		c.Set(RequestIDContext, id)
		c.Header(HeaderRequestID, id)
		ctx := lambdacontext.NewContext(c.Request.Context(), &lambdacontext.LambdaContext{
			AwsRequestID: id,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// AccessLog writes one logrus entry per request.
func AccessLog(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.WithFields(logrus.Fields{
			"request_id": c.GetString(RequestIDContext),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency":    time.Since(start).String(),
		}).Info("[HTTP] Request")
	}
}

func Cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, PATCH, HEAD, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, "+HeaderRequestID)
		c.Header("Access-Control-Expose-Headers", HeaderRequestID)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
