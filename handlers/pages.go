package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/thebestschool/school_site/forms"
	"github.com/thebestschool/school_site/pages"
)

func (h *Handler) Index(c *gin.Context) {
	sid := sessionID(c)
	view := pages.LandingView{TurnstileSiteKey: h.SiteKey}
	if schema, ok := h.Forms.Lookup(forms.ContactForm); ok {
		view.Contact = pages.FormView{Schema: schema, Snapshot: h.snapshot(sid, schema), SiteKey: h.SiteKey}
	}
	if schema, ok := h.Forms.Lookup(forms.EnrollmentForm); ok {
		view.Enrollment = pages.FormView{Schema: schema, Snapshot: h.snapshot(sid, schema), SiteKey: h.SiteKey}
	}
	renderHTML(c, http.StatusOK, pages.Landing(view))
}

// PostForm handles a plain HTML form post: every posted field is applied,
// the form is submitted and the browser is sent back to the form's anchor
// where the outcome is rendered.
func (h *Handler) PostForm(c *gin.Context) {
	schema, ok := h.schema(c)
	if !ok {
		return
	}
	if err := h.Captcha.Verify(c.Request.Context(), c.PostForm(pages.TurnstileField), c.ClientIP()); err != nil {
		c.String(http.StatusForbidden, "Verification failed, please go back and try again.")
		return
	}

	sess, err := h.Store.Open(sessionID(c), schema)
	if err != nil {
		h.Logger.Error("open form session", zap.Error(err))
		c.String(http.StatusInternalServerError, "Error: "+err.Error())
		return
	}

	for _, name := range schema.FieldNames() {
		value, posted := c.GetPostForm(name)
		if !posted {
			continue
		}
		if err := sess.SetField(name, value); err != nil {
			break
		}
	}

	_, err = sess.Submit(c.Request.Context())
	var verr *forms.ValidationError
	switch {
	case err == nil, errors.As(err, &verr), errors.Is(err, forms.ErrSubmissionFailed):
		// outcome is held by the session and rendered after the redirect
	default:
		h.Logger.Info("form post rejected", zap.String("form", schema.Name), zap.Error(err))
	}
	c.Redirect(http.StatusSeeOther, "/#"+schema.Name)
}

func (h *Handler) PostReset(c *gin.Context) {
	schema, ok := h.schema(c)
	if !ok {
		return
	}
	if sess, found := h.Store.Get(sessionID(c), schema.Name); found {
		if err := sess.Reset(); err != nil {
			h.Logger.Debug("reset ignored", zap.String("form", schema.Name), zap.Error(err))
		}
	}
	c.Redirect(http.StatusSeeOther, "/#"+schema.Name)
}
