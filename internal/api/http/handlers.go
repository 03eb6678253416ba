package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/GriffinCanCode/bibkit/internal/api/middleware"
	"github.com/GriffinCanCode/bibkit/internal/domain/cleanup"
	"github.com/GriffinCanCode/bibkit/internal/domain/doi"
	"github.com/GriffinCanCode/bibkit/internal/domain/entry"
	"github.com/GriffinCanCode/bibkit/internal/domain/fields"
	"github.com/GriffinCanCode/bibkit/internal/infrastructure/config"
	"github.com/GriffinCanCode/bibkit/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/bibkit/internal/providers/fulltext"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers holds the dependencies of the API routes
type Handlers struct {
	registry *cleanup.Registry
	presets  cleanup.Presets
	fields   config.FieldsConfig
	finder   *fulltext.Finder
	metrics  *monitoring.Metrics
	logger   *zap.Logger
	now      func() time.Time
}

// NewHandlers creates the API handlers
func NewHandlers(
	registry *cleanup.Registry,
	presets cleanup.Presets,
	fieldsCfg config.FieldsConfig,
	finder *fulltext.Finder,
	metrics *monitoring.Metrics,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		registry: registry,
		presets:  presets,
		fields:   fieldsCfg,
		finder:   finder,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock replaces the time source used for timestamps
func (h *Handlers) WithClock(now func() time.Time) *Handlers {
	h.now = now
	return h
}

// Finder returns the full-text lookup chain
func (h *Handlers) Finder() *fulltext.Finder {
	return h.finder
}

// Metrics returns the collector the handlers record into
func (h *Handlers) Metrics() *monitoring.Metrics {
	return h.metrics
}

// Register mounts all routes on router
func (h *Handlers) Register(router gin.IRouter) {
	router.GET("/health", h.Health)

	v1 := router.Group("/api/v1")
	v1.GET("/doi", h.ParseDOI)
	v1.POST("/cleanup", h.Cleanup)
	v1.POST("/stamp", h.Stamp)
	v1.POST("/fulltext", h.FullText)
}

// Health reports liveness plus the configured jobs, presets and providers
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"jobs":      h.registry.Names(),
		"presets":   h.presets.Names(),
		"providers": h.finder.Fetchers(),
		"metrics":   h.metrics.Snapshot(),
	})
}

// ParseDOI validates and canonicalizes a DOI
func (h *Handlers) ParseDOI(c *gin.Context) {
	value, ok := c.GetQuery("value")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "value query parameter required"})
		return
	}

	d, valid := doi.Parse(value)
	if !valid {
		c.JSON(http.StatusOK, DOIResponse{Valid: false})
		return
	}
	c.JSON(http.StatusOK, DOIResponse{Valid: true, DOI: d.DOI(), URI: d.URIString()})
}

// Cleanup runs a preset or an explicit job list over the entries
func (h *Handlers) Cleanup(c *gin.Context) {
	timer := monitoring.NewTimer(h.metrics, "cleanup")

	var req CleanupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		timer.Stop("invalid")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cleanup request: " + err.Error()})
		return
	}

	job, err := h.ResolveJob(req.Preset, req.Jobs)
	if err != nil {
		timer.Stop("invalid")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries, err := toEntries(req.Entries)
	if err != nil {
		timer.Stop("invalid")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	changes := cleanup.Run(job, entries)
	if changes == nil {
		changes = []entry.FieldChange{}
	}
	h.metrics.RecordCleanup(len(entries), changes)
	elapsed := timer.Stop("success")

	h.logger.Info("cleanup complete",
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.Int("entries", len(entries)),
		zap.Int("changes", len(changes)),
		zap.Duration("elapsed", elapsed))

	c.JSON(http.StatusOK, CleanupResponse{Entries: fromEntries(entries), Changes: changes})
}

// ResolveJob builds the job for an explicit job list, or for a named preset
// when the list is empty. An empty preset selects the default one.
func (h *Handlers) ResolveJob(preset string, jobs []string) (cleanup.Job, error) {
	if len(jobs) > 0 {
		if preset != "" {
			return nil, errors.New("preset and jobs are mutually exclusive")
		}
		return h.registry.Build(jobs)
	}

	if preset == "" {
		preset = cleanup.DefaultPresetName
	}
	return h.presets.Resolve(preset, h.registry)
}

// Stamp sets owner and timestamp fields per the server configuration
func (h *Handlers) Stamp(c *gin.Context) {
	timer := monitoring.NewTimer(h.metrics, "stamp")

	var req StampRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		timer.Stop("invalid")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid stamp request: " + err.Error()})
		return
	}

	entries, err := toEntries(req.Entries)
	if err != nil {
		timer.Stop("invalid")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg := fields.AutomaticFieldsFromConfig(h.fields, h.now())
	fields.SetAutomaticFields(entries, req.OverwriteOwner, req.OverwriteTimestamp, cfg)
	h.metrics.RecordStamp(len(entries))
	timer.Stop("success")

	c.JSON(http.StatusOK, StampResponse{Entries: fromEntries(entries)})
}

// FullText looks up a document link for one entry. Not finding one is a
// 200 with found=false; publisher failures are reported as 502.
func (h *Handlers) FullText(c *gin.Context) {
	timer := monitoring.NewTimer(h.metrics, "fulltext")

	var req FullTextRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Entry == nil {
		timer.Stop("invalid")
		c.JSON(http.StatusBadRequest, gin.H{"error": "request must contain an entry"})
		return
	}

	e, err := req.Entry.ToEntry()
	if err != nil {
		timer.Stop("invalid")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	u, err := h.finder.FindFullText(c.Request.Context(), e)
	switch {
	case errors.Is(err, fulltext.ErrInvalidArgument):
		timer.Stop("invalid")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		timer.Stop("error")
		h.logger.Warn("full-text lookup failed",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Stringer("entry", e.ID()),
			zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "publisher lookup failed: " + err.Error()})
	case u == nil:
		timer.Stop("not_found")
		c.JSON(http.StatusOK, FullTextResponse{Found: false})
	default:
		timer.Stop("found")
		c.JSON(http.StatusOK, FullTextResponse{Found: true, URL: u.String()})
	}
}
