package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/syd18b/mvp-search/internal/logger"
	"github.com/syd18b/mvp-search/internal/panel"
	"github.com/syd18b/mvp-search/internal/render"
)

// Handler serves one search panel.
type Handler struct {
	panel    *panel.Panel
	renderer *render.Renderer
	log      logger.Logger
}

func NewHandler(p *panel.Panel, r *render.Renderer, log logger.Logger) *Handler {
	return &Handler{panel: p, renderer: r, log: log}
}

// Routes registers the panel routes on router.
func (h *Handler) Routes(router gin.IRouter) {
	router.GET("/", h.index)
	router.GET("/analyze", h.analyze)
	router.POST("/analyze", h.analyze)
	router.POST("/clear", h.clear)
	router.GET("/api/state", h.state)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func (h *Handler) index(c *gin.Context) {
	h.page(c, h.panel.Snapshot())
}

func (h *Handler) analyze(c *gin.Context) {
	url := c.PostForm("url")
	if c.Request.Method == http.MethodGet {
		url = c.Query("url")
	}

	// The panel is shared; a client hanging up must not fail its fetch.
	ctx := context.WithoutCancel(c.Request.Context())
	snap, err := h.panel.Submit(ctx, url)
	if errors.Is(err, panel.ErrStale) {
		snap = h.panel.Snapshot()
	}
	h.page(c, snap)
}

func (h *Handler) clear(c *gin.Context) {
	h.panel.SetQuery("")
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) state(c *gin.Context) {
	c.JSON(http.StatusOK, h.panel.Snapshot())
}

func (h *Handler) page(c *gin.Context, snap panel.Snapshot) {
	var buf bytes.Buffer
	if err := h.renderer.Page(&buf, snap); err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "render failed")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}
