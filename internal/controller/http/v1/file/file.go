package file

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

const mediaRoot = "./media"

type Controller struct{}

func NewController() *Controller {
	return &Controller{}
}

// File serves stored uploads. Directory listings and path escapes are
// refused; only concrete files under the media root are reachable.
func (cf Controller) File(c *gin.Context) {
	requested := c.Param("filepath")

	cleaned := filepath.Clean(requested)
	if strings.Contains(cleaned, "..") {
		c.JSON(http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "incorrect link",
		})
		return
	}
	if strings.HasSuffix(requested, "/") || cleaned == "/" || cleaned == "." {
		c.Writer.WriteHeader(http.StatusNotFound)
		return
	}

	c.File(filepath.Join(mediaRoot, cleaned))
}
