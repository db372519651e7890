package handlers

import (
	"context"
	"net/http"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/thebestschool/school_site/forms"
	"github.com/thebestschool/school_site/middleware"
	"github.com/thebestschool/school_site/models"
	"github.com/thebestschool/school_site/operations"
	"github.com/thebestschool/school_site/validators"
)

type Handler struct {
	Forms   forms.Registry
	Store   *operations.Store
	Captcha *validators.TurnstileVerifier
	SiteKey string
	Logger  *zap.Logger
}

// Register mounts the site's routes. submitLimit guards the routes that post
// to a relay. editLimit guards field edits and resets.
func (h *Handler) Register(r gin.IRouter, submitLimit, editLimit gin.HandlerFunc) {
	r.GET("/", h.Index)
	r.GET("/healthz", h.Health)

	r.POST("/forms/:form", submitLimit, h.PostForm)
	r.POST("/forms/:form/reset", editLimit, h.PostReset)

	api := r.Group("/api/forms")
	api.GET("", h.ListForms)
	api.GET("/:form", h.GetForm)
	api.PATCH("/:form/fields", editLimit, h.SetField)
	api.POST("/:form/submit", submitLimit, h.Submit)
	api.POST("/:form/reset", editLimit, h.Reset)
	api.DELETE("/:form", h.CloseForm)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": h.Store.Count()})
}

// schema resolves the :form parameter, answering 404 when it is unknown.
func (h *Handler) schema(c *gin.Context) (forms.Schema, bool) {
	schema, ok := h.Forms.Lookup(c.Param("form"))
	if !ok {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "unknown form"})
	}
	return schema, ok
}

// snapshot returns the browser's current view of schema without opening a
// session for it.
func (h *Handler) snapshot(sid string, schema forms.Schema) models.Snapshot {
	if sess, ok := h.Store.Get(sid, schema.Name); ok {
		return sess.Snapshot()
	}
	return models.Snapshot{
		Form:   schema.Name,
		State:  models.StateIdle,
		Data:   schema.Empty(),
		Errors: models.ValidationErrors{},
	}
}

// templRender adapts a templ component to gin's render.Render.
type templRender struct {
	ctx       context.Context
	component templ.Component
}

func (t templRender) Render(w http.ResponseWriter) error {
	t.WriteContentType(w)
	return t.component.Render(t.ctx, w)
}

func (t templRender) WriteContentType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}

func renderHTML(c *gin.Context, status int, component templ.Component) {
	c.Render(status, templRender{ctx: c.Request.Context(), component: component})
}

func sessionID(c *gin.Context) string {
	return middleware.SessionID(c)
}
