package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports liveness and whether the upload directory is usable.
type HealthHandler struct {
	uploadRoot string
}

func NewHealthHandler(uploadRoot string) *HealthHandler {
	return &HealthHandler{uploadRoot: uploadRoot}
}

// HealthCheckHandler godoc
// @Summary      Health Check
// @Description  Checks the health of the API and its upload directory.
// @Tags         Monitoring
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /health [get]
func (h *HealthHandler) HealthCheckHandler(c *gin.Context) {
	if info, err := os.Stat(h.uploadRoot); err != nil || !info.IsDir() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "DOWN",
			"storage": "unavailable",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "UP",
		"storage": "ok",
	})
}
