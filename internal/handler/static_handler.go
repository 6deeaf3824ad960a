package handler

import (
	"os"
	"path"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
)

// StaticHandler serves the prebuilt site from a fixed directory.
// Extensionless paths resolve to their .html file, matching how the site
// links between pages.
type StaticHandler struct {
	root string
}

func NewStaticHandler(root string) *StaticHandler {
	return &StaticHandler{root: root}
}

func (h *StaticHandler) Serve(c *fiber.Ctx) error {
	// Clean with a leading slash collapses any ".." segments, so the
	// joined path can never escape the root.
	cleaned := path.Clean("/" + c.Path())
	if cleaned == "/" {
		cleaned = "/index.html"
	}

	fsPath := filepath.Join(h.root, filepath.FromSlash(cleaned))

	if st, err := os.Stat(fsPath); err == nil && !st.IsDir() {
		return c.SendFile(fsPath)
	}

	if path.Ext(cleaned) == "" {
		htmlPath := fsPath + ".html"
		if st, err := os.Stat(htmlPath); err == nil && !st.IsDir() {
			return c.SendFile(htmlPath)
		}
	}

	return c.SendStatus(fiber.StatusNotFound)
}
