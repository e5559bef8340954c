/*
Package monitoring provides Prometheus metrics for the demo service.

# Overview

This package tracks splice outcomes (spliced, passed-through, degraded) and
basic HTTP request metrics. The Metrics type implements splice.Observer, so it
plugs straight into the splicer:

	metrics := monitoring.New(prometheus.DefaultRegisterer)
	splicer := splice.New(splice.WithObserver(metrics))
	router.Use(monitoring.Middleware(metrics))

# Metrics Endpoint

Expose metrics via the standard Prometheus endpoint:

	import "github.com/prometheus/client_golang/prometheus/promhttp"
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
*/
package monitoring
