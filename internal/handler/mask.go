package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/masklab/snowmask/internal/logger"
	"github.com/masklab/snowmask/internal/mask"
	"github.com/masklab/snowmask/internal/metrics"
	"github.com/masklab/snowmask/internal/util"
)

// Config represents the mask handler configuration
type Config struct {
	DefaultCategory string
	DefaultLevel    string
	Metrics         *metrics.Metrics
}

// MaskHandler serves the /v1/mask endpoints.
type MaskHandler struct {
	config Config
}

// NewMaskHandler creates a new mask handler
func NewMaskHandler(config Config) *MaskHandler {
	if config.DefaultCategory == "" {
		config.DefaultCategory = string(mask.DefaultCategory)
	}
	if config.DefaultLevel == "" {
		config.DefaultLevel = string(mask.DefaultLevel)
	}
	return &MaskHandler{config: config}
}

type maskRequest struct {
	Value    string `json:"value"`
	Category string `json:"category,omitempty"`
	Level    string `json:"level,omitempty"`
}

type maskResponse struct {
	Masked      string `json:"masked"`
	Category    string `json:"category"`
	Level       string `json:"level"`
	Passthrough bool   `json:"passthrough,omitempty"`
}

// MaskJSON handles POST /v1/mask with a JSON body.
func (h *MaskHandler) MaskJSON(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.NewString()
	logger.Debug("[%s] %s %s from %s", reqID, r.Method, r.URL.Path, r.RemoteAddr)

	var req maskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("[%s] Invalid JSON body: %v", reqID, err)
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	h.respond(w, reqID, req)
}

// MaskQuery handles GET /v1/mask?value=&category=&level=.
func (h *MaskHandler) MaskQuery(w http.ResponseWriter, r *http.Request) {
	reqID := uuid.NewString()
	logger.Debug("[%s] %s %s from %s", reqID, r.Method, r.URL.Path, r.RemoteAddr)

	q := r.URL.Query()
	h.respond(w, reqID, maskRequest{
		Value:    q.Get("value"),
		Category: q.Get("category"),
		Level:    q.Get("level"),
	})
}

func (h *MaskHandler) respond(w http.ResponseWriter, reqID string, req maskRequest) {
	start := time.Now()

	category := req.Category
	if category == "" {
		category = h.config.DefaultCategory
	}
	level := req.Level
	if level == "" {
		level = h.config.DefaultLevel
	}

	// Normalized tags for the response and metric labels. Unrecognized
	// categories report as "unknown" to keep label cardinality bounded.
	resolvedCategory, known := mask.ParseCategory(category)
	categoryLabel := string(resolvedCategory)
	if !known {
		categoryLabel = "unknown"
	}
	resolvedLevel := mask.ParseLevel(level)

	masked := mask.String(req.Value, category, level)
	passthrough := !known || req.Value == ""

	if h.config.Metrics != nil {
		h.config.Metrics.ObserveRequest(categoryLabel, string(resolvedLevel), passthrough, time.Since(start))
	}

	// The raw value must never reach the log stream; the masked result
	// is abbreviated too, short inputs survive passthrough intact.
	logger.Debug("[%s] Masked %s value at %s level: %s", reqID, categoryLabel, resolvedLevel, util.Abbreviate(masked))

	h.writeJSON(w, maskResponse{
		Masked:      masked,
		Category:    categoryLabel,
		Level:       string(resolvedLevel),
		Passthrough: passthrough,
	})
}

func (h *MaskHandler) writeJSON(w http.ResponseWriter, resp maskResponse) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Error("Failed to encode response: %v", err)
	}
}
