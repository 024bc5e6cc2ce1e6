package controllers

import (
	"net/http"
	"strings"

	"jelly/internal/config"

	"github.com/gin-gonic/gin"
)

// PagesController renders the HTML pages
type PagesController struct {
	store *config.Store
}

func NewPagesController(store *config.Store) *PagesController {
	return &PagesController{store: store}
}

// Index sends visitors to the dashboard
func (pc *PagesController) Index(c *gin.Context) {
	c.Redirect(http.StatusFound, "/dashboard")
}

// Dashboard renders the live dashboard with the current settings
func (pc *PagesController) Dashboard(c *gin.Context) {
	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"config": loadOrDefault(pc.store),
	})
}

// emptySourceMap is a minimal valid source map. Browser extensions inject scripts
// that reference maps this server never had; answering keeps DevTools quiet.
var emptySourceMap = gin.H{
	"version":  3,
	"file":     "",
	"sources":  []string{},
	"names":    []string{},
	"mappings": "",
}

// SourceMap answers any .map request with an empty source map
func SourceMap(c *gin.Context) {
	c.JSON(http.StatusOK, emptySourceMap)
}

// NotFound serves empty source maps for unknown .map paths and a JSON 404 otherwise
func NotFound(c *gin.Context) {
	if strings.HasSuffix(c.Request.URL.Path, ".map") {
		SourceMap(c)
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
}
