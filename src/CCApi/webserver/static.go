package webserver

import (
	"embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed static/index.html
var staticFS embed.FS

func attachStatic(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		page, err := staticFS.ReadFile("static/index.html")
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", page)
	})
}
