package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/thebestschool/school_site/forms"
	"github.com/thebestschool/school_site/models"
)

type formResponse struct {
	Form  models.Snapshot `json:"form"`
	Error string          `json:"error,omitempty"`
}

type fieldRequest struct {
	Name  string `json:"name" binding:"required"`
	Value string `json:"value"`
}

type submitRequest struct {
	Fields         map[string]string `json:"fields"`
	TurnstileToken string            `json:"turnstileToken"`
}

// statusFor maps session errors onto HTTP statuses for the JSON API.
func statusFor(err error) int {
	var verr *forms.ValidationError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, forms.ErrUnknownField):
		return http.StatusBadRequest
	case errors.Is(err, forms.ErrSubmissionInFlight),
		errors.Is(err, forms.ErrNotEditable),
		errors.Is(err, forms.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, forms.ErrClosed):
		return http.StatusGone
	case errors.Is(err, forms.ErrSubmissionFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respond(c *gin.Context, snap models.Snapshot, err error) {
	resp := formResponse{Form: snap}
	if err != nil {
		// relay details stay in the logs; clients get the banner
		if errors.Is(err, forms.ErrSubmissionFailed) {
			resp.Error = snap.Error
		} else {
			resp.Error = err.Error()
		}
	}
	c.JSON(statusFor(err), resp)
}

func (h *Handler) ListForms(c *gin.Context) {
	sid := sessionID(c)
	out := make([]models.Snapshot, 0, len(h.Forms))
	for _, rec := range h.Store.List(sid) {
		out = append(out, rec.Session.Snapshot())
	}
	c.JSON(http.StatusOK, gin.H{"forms": out})
}

func (h *Handler) GetForm(c *gin.Context) {
	schema, ok := h.schema(c)
	if !ok {
		return
	}
	respond(c, h.snapshot(sessionID(c), schema), nil)
}

func (h *Handler) SetField(c *gin.Context) {
	schema, ok := h.schema(c)
	if !ok {
		return
	}
	var req fieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sess, err := h.Store.Open(sessionID(c), schema)
	if err != nil {
		h.Logger.Error("open form session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	err = sess.SetField(req.Name, req.Value)
	respond(c, sess.Snapshot(), err)
}

// Submit applies any fields sent with the request and submits the form.
// With "Prefer: respond-async" it answers 202 as soon as the request is on
// its way; clients poll GetForm for the outcome.
func (h *Handler) Submit(c *gin.Context) {
	schema, ok := h.schema(c)
	if !ok {
		return
	}
	var req submitRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if err := h.Captcha.Verify(c.Request.Context(), req.TurnstileToken, c.ClientIP()); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		return
	}

	sess, err := h.Store.Open(sessionID(c), schema)
	if err != nil {
		h.Logger.Error("open form session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	for name, value := range req.Fields {
		if err := sess.SetField(name, value); err != nil {
			respond(c, sess.Snapshot(), err)
			return
		}
	}

	if strings.Contains(c.GetHeader("Prefer"), "respond-async") {
		if _, err := sess.SubmitAsync(c.Request.Context()); err != nil {
			respond(c, sess.Snapshot(), err)
			return
		}
		c.JSON(http.StatusAccepted, formResponse{Form: sess.Snapshot()})
		return
	}

	snap, err := sess.Submit(c.Request.Context())
	respond(c, snap, err)
}

func (h *Handler) Reset(c *gin.Context) {
	schema, ok := h.schema(c)
	if !ok {
		return
	}
	sess, found := h.Store.Get(sessionID(c), schema.Name)
	if !found {
		respond(c, h.snapshot(sessionID(c), schema), forms.ErrInvalidTransition)
		return
	}
	err := sess.Reset()
	respond(c, sess.Snapshot(), err)
}

func (h *Handler) CloseForm(c *gin.Context) {
	schema, ok := h.schema(c)
	if !ok {
		return
	}
	if err := h.Store.Close(sessionID(c), schema.Name); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
