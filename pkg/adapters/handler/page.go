package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/wadjakorntonsri/weblinks/pkg/adapters/view"
	"github.com/wadjakorntonsri/weblinks/pkg/core/domain"
	"github.com/wadjakorntonsri/weblinks/pkg/ports"
)

// PageHandler serves the HTML page, one route per UI intent.
type PageHandler struct {
	controller ports.Controller
	log        *zap.Logger
}

func NewPageHandler(controller ports.Controller, log *zap.Logger) *PageHandler {
	return &PageHandler{controller: controller, log: log}
}

// Index is the initial load: a random selection of links.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	page, err := h.controller.Load(r.Context())
	h.render(w, r, page, err)
}

// List shows every link, or the links matching ?author= or ?tag=.
func (h *PageHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var page *domain.Page
	var err error
	switch {
	case q.Has("author"):
		page, err = h.controller.Filter(r.Context(), domain.IndexAuthor, q.Get("author"))
	case q.Has("tag"):
		page, err = h.controller.Filter(r.Context(), domain.IndexTags, q.Get("tag"))
	default:
		page, err = h.controller.GetAll(r.Context())
	}
	h.render(w, r, page, err)
}

func (h *PageHandler) New(w http.ResponseWriter, r *http.Request) {
	page, err := h.controller.AddIntent(r.Context())
	h.render(w, r, page, err)
}

// Save adds or updates the link posted from the input form.
func (h *PageHandler) Save(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	page, err := h.controller.Save(r.Context(), view.ReadForm(r.PostForm))
	h.render(w, r, page, err)
}

// RowAction handles the Edit and Delete controls of a table row.
func (h *PageHandler) RowAction(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	page, err := h.controller.RowAction(r.Context(), r.PathValue("action"), id)
	h.render(w, r, page, err)
}

// ConfirmDelete removes the link after the user confirmed it.
func (h *PageHandler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	page, err := h.controller.ConfirmDelete(r.Context(), id)
	h.render(w, r, page, err)
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, page *domain.Page, err error) {
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := view.RenderPage(w, page); err != nil {
		h.log.Error("render page", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
