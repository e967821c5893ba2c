package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/wadjakorntonsri/weblinks/pkg/core/domain"
	"github.com/wadjakorntonsri/weblinks/pkg/core/services"
	"github.com/wadjakorntonsri/weblinks/pkg/ports"
)

// HTTPHandler serves the JSON API.
type HTTPHandler struct {
	service ports.LinkService
	log     *zap.Logger
}

func NewHTTPHandler(service ports.LinkService, log *zap.Logger) *HTTPHandler {
	return &HTTPHandler{service: service, log: log}
}

// LinkRequest payload, used for both create and full update.
type LinkRequest struct {
	Title    string   `json:"title"`
	URL      string   `json:"url"`
	Author   string   `json:"author"`
	Tags     []string `json:"tags"`
	Comments string   `json:"comments"`
}

func (req LinkRequest) link(id int64) domain.Link {
	return domain.Link{
		ID:       id,
		Title:    req.Title,
		URL:      req.URL,
		Author:   req.Author,
		Tags:     req.Tags,
		Comments: req.Comments,
	}
}

// Create Link
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req LinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	link, err := h.service.Add(r.Context(), req.link(0))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, link)
}

// List Links, optionally by ?author= or ?tag=
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	index, match := "", ""
	switch {
	case q.Has("author"):
		index, match = domain.IndexAuthor, q.Get("author")
	case q.Has("tag"):
		index, match = domain.IndexTags, q.Get("tag")
	}

	links, err := h.service.Query(r.Context(), index, match)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data":  links,
		"total": len(links),
	})
}

// Random returns up to ?count= links (default 5) picked at random.
func (h *HTTPHandler) Random(w http.ResponseWriter, r *http.Request) {
	count := services.DefaultDiscoverCount
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "Invalid count", http.StatusBadRequest)
			return
		}
		count = n
	}

	links, err := h.service.Discover(r.Context(), count)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"data": links})
}

// Get Link by id
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	link, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, link)
}

// Update Link, replacing every field
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	var req LinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid body", http.StatusBadRequest)
		return
	}

	link, err := h.service.Replace(r.Context(), req.link(id))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, link)
}

// Delete Link
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Values lists the distinct keys of an index; "id" lists every link id.
func (h *HTTPHandler) Values(w http.ResponseWriter, r *http.Request) {
	index := r.PathValue("index")
	if index == "id" {
		index = ""
	}

	values, err := h.service.DistinctValues(r.Context(), index)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"data": values})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
