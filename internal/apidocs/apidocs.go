// Package apidocs serves the OpenAPI description of the HTTP API.
package apidocs

import (
	_ "embed"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-yaml"
)

//go:embed openapi.yaml
var openAPIYAML []byte

const swaggerUIPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Task Tracker API</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = () => {
      window.ui = SwaggerUIBundle({ url: "%s", dom_id: "#swagger-ui" });
    };
  </script>
</body>
</html>`

// Docs holds the API description in both encodings.
type Docs struct {
	yaml []byte
	json []byte
}

// Load converts the embedded document to JSON once. It fails if the
// document is not valid YAML.
func Load() (*Docs, error) {
	converted, err := yaml.YAMLToJSON(openAPIYAML)
	if err != nil {
		return nil, fmt.Errorf("convert openapi document: %w", err)
	}
	return &Docs{yaml: openAPIYAML, json: converted}, nil
}

// Register mounts the documentation routes under prefix.
func (d *Docs) Register(r gin.IRouter, prefix string) {
	g := r.Group(prefix)
	g.GET("", d.page(prefix+"/openapi.json"))
	g.GET("/openapi.yaml", d.serveYAML)
	g.GET("/openapi.json", d.serveJSON)
}

func (d *Docs) page(specURL string) gin.HandlerFunc {
	body := []byte(fmt.Sprintf(swaggerUIPage, specURL))
	return func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", body)
	}
}

func (d *Docs) serveYAML(c *gin.Context) {
	c.Data(http.StatusOK, "application/yaml", d.yaml)
}

func (d *Docs) serveJSON(c *gin.Context) {
	c.Data(http.StatusOK, "application/json", d.json)
}
