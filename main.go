// Package main is a demonstration server that guards HTTP routes with the
// admission limiter. The limiter itself performs no I/O; everything network-
// facing lives here and in the middleware package.
package main

import (
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"learn.admission/api"
	"learn.admission/metrics"
	"learn.admission/middleware"
)

func main() {
	// Configure zerolog for console output
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	port := flag.Int("p", 8080, "Port to run the HTTP server on")
	configPath := flag.String("config", "config.yaml", "Path to the configuration file")
	logLevelStr := flag.String("log-level", "info", "Logging level (trace, debug, info, warn, error, fatal, panic)")

	flag.Parse()

	logLevel, err := zerolog.ParseLevel(*logLevelStr)
	if err != nil {
		log.Fatal().Err(err).Str("log_level", *logLevelStr).Msg("Invalid log level provided")
	}
	zerolog.SetGlobalLevel(logLevel)

	log.Info().Str("config_path", *configPath).Msg("Starting application initialization")

	limiter, err := api.NewLimiterFromConfigPath(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("config_path", *configPath).Msg("Application startup failed: Error initializing admission limiter from config")
	}

	admissionMetrics := metrics.NewAdmissionMetrics(prometheus.DefaultRegisterer)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(limiter, admissionMetrics)

	// Unlimited route: its key carries no policy, so admission is fail-open.
	http.HandleFunc("/unlimited", rateLimitMiddleware.Handle(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Unlimited! Let's Go!")
	}, routeKey("unlimited")))

	// Route guarded by the 'api' policy from config.yaml.
	http.HandleFunc("/limited", rateLimitMiddleware.Handle(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Limited, don't over use me!")
	}, routeKey("api")))

	// Per-client login limiting: one 'login:<ip>' key per client. Only keys
	// listed in config.yaml are enforced; the rest admit fail-open.
	http.HandleFunc("/login", rateLimitMiddleware.Handle(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Login attempt processed!")
	}, func(r *http.Request) string {
		return "login:" + getClientIP(r)
	}))

	// Expose Prometheus metrics endpoint
	http.Handle("/metrics", promhttp.Handler())

	addr := fmt.Sprintf(":%d", *port)
	log.Info().Str("address", addr).Msg("Starting HTTP server")
	log.Fatal().Err(http.ListenAndServe(addr, nil)).Str("address", addr).Msg("HTTP server stopped")
}

// routeKey returns a key extractor that charges every request on the route to
// the same admission key.
func routeKey(key string) func(*http.Request) string {
	return func(*http.Request) string { return key }
}

// getClientIP extracts the client's IP address from the request.
// It checks X-Forwarded-For, X-Real-IP headers, and finally the request's RemoteAddr.
func getClientIP(r *http.Request) string {
	ip := r.Header.Get("X-Forwarded-For")
	if ip != "" {
		return strings.Split(ip, ",")[0]
	}

	ip = r.Header.Get("X-Real-IP")
	if ip != "" {
		return ip
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
