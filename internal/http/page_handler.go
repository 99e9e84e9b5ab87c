package http

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/fjod/cart-store/internal/service"
	"github.com/fjod/cart-store/internal/view"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// PageHandler serves the HTML cart review page and its form posts.
type PageHandler struct {
	ctrl    *view.Controller
	timeout time.Duration
	log     logrus.FieldLogger
}

func NewPageHandler(ctrl *view.Controller, timeout time.Duration, log logrus.FieldLogger) *PageHandler {
	return &PageHandler{ctrl: ctrl, timeout: timeout, log: log}
}

func (h *PageHandler) Show(w http.ResponseWriter, r *http.Request) {
	page := h.ctrl.Page()
	page.Notice = r.URL.Query().Get("notice")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := view.Render(w, page); err != nil {
		h.log.WithError(err).Error("failed to render cart page")
	}
}

// Action handles POST /cart/items/{product_id}/{action} and redirects back to
// the page, carrying the failure message as a notice.
func (h *PageHandler) Action(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var (
		op  service.Op
		run func(context.Context, int64) error
	)
	switch chi.URLParam(r, "action") {
	case "add":
		op, run = service.OpAdd, h.ctrl.Add
	case "increment":
		op, run = service.OpUpdateAmount, h.ctrl.Increment
	case "decrement":
		op, run = service.OpUpdateAmount, h.ctrl.Decrement
	case "remove":
		op, run = service.OpRemove, h.ctrl.Remove
	default:
		http.NotFound(w, r)
		return
	}

	productID, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || productID <= 0 {
		h.redirect(w, r, h.ctrl.Message(op, fmt.Errorf("product %q: %w", chi.URLParam(r, "product_id"), service.ErrNotFound)))
		return
	}

	if err := run(ctx, productID); err != nil {
		h.redirect(w, r, h.ctrl.Message(op, err))
		return
	}
	h.redirect(w, r, "")
}

func (h *PageHandler) redirect(w http.ResponseWriter, r *http.Request, notice string) {
	target := "/cart"
	if notice != "" {
		target += "?notice=" + url.QueryEscape(notice)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
