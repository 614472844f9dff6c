package main

import (
	"net/http"

	"github.com/angeloszaimis/bootconfig/internal/handler"
	"github.com/angeloszaimis/bootconfig/internal/metrics"
)

func setupRouter(gatewayHandler *handler.GatewayHandler, metricsCollector *metrics.Collector) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/", gatewayHandler.ServeHTTP)
	mux.HandleFunc("/config", gatewayHandler.ServeConfig)
	mux.HandleFunc("/metrics", metricsCollector.Handler())

	return mux
}
