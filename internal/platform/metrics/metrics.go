// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package metrics collects and exposes Prometheus metrics for ComicInfo
// rendering and gallery imports.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Render sources.
const (
	SourceCache  = "cache"
	SourceStore  = "store"
	SourceUpload = "upload"
)

// Failure reasons.
const (
	ReasonNotFound     = "not_found"
	ReasonPrecondition = "precondition"
	ReasonEncode       = "encode"
	ReasonStorage      = "storage"
)

// Recorder is what the service layer needs from the metrics backend.
type Recorder interface {
	RecordRendered(source string)
	RecordRenderFailure(reason string)
	RecordPreconditionViolation()
	RecordCacheLookup(hit bool)
	RecordRenderLatency(duration time.Duration)
	RecordGalleryImported()
}

// Collector is the Prometheus implementation of [Recorder].
type Collector struct {
	rendered      *prometheus.CounterVec
	failed        *prometheus.CounterVec
	precondition  prometheus.Counter
	cacheHits     prometheus.Counter
	cacheMisses   prometheus.Counter
	renderLatency prometheus.Histogram
	imported      prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		rendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "galleryinfo_comicinfo_rendered_total",
			Help: "ComicInfo documents served, by source.",
		}, []string{"source"}),
		failed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "galleryinfo_comicinfo_failed_total",
			Help: "ComicInfo renders that failed, by reason.",
		}, []string{"reason"}),
		precondition: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "galleryinfo_precondition_violations_total",
			Help: "Gallery records whose upload date does not fit the ComicInfo schema.",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "galleryinfo_comicinfo_cache_hits_total",
			Help: "Rendered documents served from Redis.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "galleryinfo_comicinfo_cache_misses_total",
			Help: "Cache lookups that fell through to a fresh render.",
		}),
		renderLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "galleryinfo_comicinfo_render_seconds",
			Help:    "Time to produce a ComicInfo document, cache lookup included.",
			Buckets: prometheus.DefBuckets,
		}),
		imported: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "galleryinfo_galleries_imported_total",
			Help: "Gallery payloads stored through the import endpoint.",
		}),
	}

	reg.MustRegister(
		c.rendered,
		c.failed,
		c.precondition,
		c.cacheHits,
		c.cacheMisses,
		c.renderLatency,
		c.imported,
	)

	return c
}

// RecordRendered counts a served document.
func (c *Collector) RecordRendered(source string) {
	c.rendered.WithLabelValues(source).Inc()
}

// RecordRenderFailure counts a failed render.
func (c *Collector) RecordRenderFailure(reason string) {
	c.failed.WithLabelValues(reason).Inc()
}

// RecordPreconditionViolation counts a record that broke the date invariant.
func (c *Collector) RecordPreconditionViolation() {
	c.precondition.Inc()
}

// RecordCacheLookup counts a Redis hit or miss.
func (c *Collector) RecordCacheLookup(hit bool) {
	if hit {
		c.cacheHits.Inc()
		return
	}
	c.cacheMisses.Inc()
}

// RecordRenderLatency observes one render duration.
func (c *Collector) RecordRenderLatency(duration time.Duration) {
	c.renderLatency.Observe(duration.Seconds())
}

// RecordGalleryImported counts a stored gallery payload.
func (c *Collector) RecordGalleryImported() {
	c.imported.Inc()
}

// Nop discards everything. Used where nothing scrapes the process.
type Nop struct{}

// RecordRendered does nothing.
func (Nop) RecordRendered(string) {}

// RecordRenderFailure does nothing.
func (Nop) RecordRenderFailure(string) {}

// RecordPreconditionViolation does nothing.
func (Nop) RecordPreconditionViolation() {}

// RecordCacheLookup does nothing.
func (Nop) RecordCacheLookup(bool) {}

// RecordRenderLatency does nothing.
func (Nop) RecordRenderLatency(time.Duration) {}

// RecordGalleryImported does nothing.
func (Nop) RecordGalleryImported() {}

// Handler returns the Prometheus scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
