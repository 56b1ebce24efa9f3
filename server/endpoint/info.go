package endpoint

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/convokit/version"
)

// startTime records when the process started for uptime calculation.
var startTime = time.Now()

// Info returns a handler that reports build information together with the
// service-specific details.
func Info(serviceName string, details map[string]any) gin.HandlerFunc {
	return func(c *gin.Context) {
		v := version.Get()
		body := gin.H{
			"service":    serviceName,
			"version":    v.Version,
			"git_commit": v.GitCommit,
			"build_time": v.BuildTime,
			"go_version": v.GoVersion,
			"is_release": v.IsRelease,
			"uptime":     time.Since(startTime).String(),
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
		}
		for k, val := range details {
			body[k] = val
		}
		c.JSON(http.StatusOK, body)
	}
}
