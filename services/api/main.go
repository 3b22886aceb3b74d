// Copyright 2023 Paolo Fabio Zaino
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package main (API) implements the expression evaluation service.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	cmn "github.com/pzaino/sdbexpr/pkg/common"
	cfg "github.com/pzaino/sdbexpr/pkg/config"
	expr "github.com/pzaino/sdbexpr/pkg/exprterpreter"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"golang.org/x/time/rate"
)

const (
	errTooManyRequests = "Too Many Requests"
	errRateLimitExceed = "Rate limit exceeded"
)

var (
	configMutex sync.Mutex
	configFile  *string
	current     atomic.Pointer[serviceState]

	sysReadyMtx sync.RWMutex // Mutex to protect the SysReady variable
	sysReady    int          // System readiness status variable 0 = not ready, 1 = starting up, 2 = ready

	// Counters for monitoring (atomic)
	totalRequests atomic.Int64
	totalErrors   atomic.Int64
	totalSuccess  atomic.Int64

	errorCodesMtx sync.Mutex
	errorCodes    = map[string]int64{}
)

// serviceState is what a request needs from the configuration. It is
// replaced as a whole on reload.
type serviceState struct {
	evaluator *expr.Evaluator
	limiter   *rate.Limiter
	maxBatch  int
}

func state() *serviceState {
	return current.Load()
}

func setSysReady(newStatus int) {
	if newStatus < 0 || newStatus > 2 {
		return
	}
	sysReadyMtx.Lock()
	defer sysReadyMtx.Unlock()
	sysReady = newStatus
}

func getSysReady() int {
	sysReadyMtx.RLock()
	defer sysReadyMtx.RUnlock()
	return sysReady
}

func initAll(configFile *string, config *cfg.Config) error {
	// Reading the configuration file
	var err error
	currentSysReady := getSysReady()
	setSysReady(1) // Indicate system is starting up or being restarted

	*config, err = cfg.LoadConfig(*configFile)
	if err != nil {
		setSysReady(currentSysReady)
		return fmt.Errorf("reading config file: %w", err)
	}
	if cfg.IsEmpty(*config) {
		setSysReady(currentSysReady)
		return fmt.Errorf("config file is empty")
	}

	// Set the OS variable
	config.OS = runtime.GOOS

	applyConfig(*config)

	setSysReady(currentSysReady) // Restore previous system ready state
	return nil
}

// applyConfig builds the evaluator and the rate limiter for config and
// makes them current.
func applyConfig(config cfg.Config) {
	cmn.SetDebugLevel(cmn.DbgLevel(config.DebugLevel))
	cmn.UpdateLoggerConfig()

	rl, bl := parseRateLimit(config.API.RateLimit)
	current.Store(&serviceState{
		evaluator: expr.New(config.EvaluatorOptions()),
		limiter:   rate.NewLimiter(rl, bl),
		maxBatch:  config.API.MaxBatch,
	})

	cmn.DebugMsg(cmn.DbgLvlDebug1, "Evaluator configured: %+v", config.EvaluatorOptions())
	cmn.DebugMsg(cmn.DbgLvlDebug1, "Rate limit: %v requests/s, burst %d", rl, bl)
}

// newServer builds the HTTP server for api. The listener settings are read
// once at startup; a SIGHUP reload does not rebind the server.
func newServer(api cfg.API, handler http.Handler) *http.Server {
	return &http.Server{
		Addr: api.Host + ":" + fmt.Sprintf("%d", api.Port),

		// ReadHeaderTimeout is the amount of time allowed to read
		// request headers.
		ReadHeaderTimeout: time.Duration(api.ReadHeaderTimeout) * time.Second,

		// ReadTimeout is the maximum duration for reading the entire
		// request, including the body.
		ReadTimeout: time.Duration(api.ReadTimeout) * time.Second,

		// WriteTimeout is the maximum duration before timing out
		// writes of the response.
		WriteTimeout: time.Duration(api.WriteTimeout) * time.Second,

		// IdleTimeout is the maximum amount of time to wait for the
		// next request when keep-alive are enabled.
		IdleTimeout: time.Duration(api.Timeout) * time.Second,

		Handler: handler,
	}
}

func main() {
	setSysReady(1) // Indicate system is starting

	// Parse the command line arguments
	configFile = flag.String("config", "./config.yaml", "Path to the configuration file")
	flag.Parse()

	// Initialize the logger
	cmn.InitLogger("sdbexprAPI")
	cmn.DebugMsg(cmn.DbgLvlInfo, "The expression evaluation API is starting...")

	// Setting up a channel to listen for termination signals
	cmn.DebugMsg(cmn.DbgLvlInfo, "Setting up termination signals listener...")
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP)

	// Define signal handling
	go func() {
		for {
			sig := <-signals
			switch sig {
			case syscall.SIGINT:
				// Handle SIGINT (Ctrl+C)
				cmn.DebugMsg(cmn.DbgLvlInfo, "SIGINT received, shutting down...")
				updateMetrics()
				os.Exit(0)

			case syscall.SIGTERM:
				// Handle SIGTERM
				cmn.DebugMsg(cmn.DbgLvlInfo, "SIGTERM received, shutting down...")
				updateMetrics()
				os.Exit(0)

			case syscall.SIGQUIT:
				// Handle SIGQUIT
				cmn.DebugMsg(cmn.DbgLvlInfo, "SIGQUIT received, shutting down...")
				updateMetrics()
				os.Exit(0)

			case syscall.SIGHUP:
				// Handle SIGHUP
				cmn.DebugMsg(cmn.DbgLvlInfo, "SIGHUP received, reloading configuration...")
				updateMetrics()
				configMutex.Lock()
				var newConfig cfg.Config
				if err := initAll(configFile, &newConfig); err != nil {
					// Keep serving with the previous configuration
					cmn.DebugMsg(cmn.DbgLvlError, "Error reloading the configuration: %v", err)
				} else {
					config = newConfig
				}
				configMutex.Unlock()
			}
		}
	}()

	// Initialize the configuration
	configMutex.Lock()
	err := initAll(configFile, &config)
	apiConf := config.API
	promEnabled := config.Prometheus.Enabled
	configMutex.Unlock()
	if err != nil {
		cmn.DebugMsg(cmn.DbgLvlFatal, "Error initializing the API: %v", err)
		os.Exit(-1)
	}

	srv := newServer(apiConf, initAPIv1())

	runtime.GOMAXPROCS(runtime.NumCPU())

	// ---------------------------------------------------------
	// Start Prometheus metrics updater
	// ---------------------------------------------------------
	if promEnabled {
		// Init immediate metrics update
		updateMetrics()
		// Start periodic metrics update
		go func() {
			ticker := time.NewTicker(15 * time.Second)
			defer ticker.Stop()

			for range ticker.C {
				updateMetrics()
			}
		}()
	}

	cmn.DebugMsg(cmn.DbgLvlInfo, "Starting server on %s", srv.Addr)
	cmn.DebugMsg(cmn.DbgLvlInfo, "Awaiting for requests...")
	if strings.ToLower(strings.TrimSpace(apiConf.SSLMode)) == cmn.EnableStr {
		setSysReady(2) // Indicate system is ready
		cmn.DebugMsg(cmn.DbgLvlFatal, "Server return: %v", srv.ListenAndServeTLS(apiConf.CertFile, apiConf.KeyFile))
	} else {
		setSysReady(2) // Indicate system is ready
		cmn.DebugMsg(cmn.DbgLvlFatal, "Server return: %v", srv.ListenAndServe())
	}
	setSysReady(0) // Indicate system is NOT ready
}

// -------------------------------------------
// Handle Prometheus Push-Gateway Metrics
//--------------------------------------------

var (
	gaugeEvalTotalRequests = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sdbexpr_eval_total_requests",
			Help: "Total number of evaluated expressions",
		},
		[]string{"engine"},
	)

	gaugeEvalTotalErrors = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sdbexpr_eval_total_errors",
			Help: "Total number of failed evaluations",
		},
		[]string{"engine"},
	)

	gaugeEvalTotalSuccess = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sdbexpr_eval_total_success",
			Help: "Total number of successful evaluations",
		},
		[]string{"engine"},
	)

	gaugeEvalErrorsByCode = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "sdbexpr_eval_errors_by_code",
			Help: "Number of failed evaluations per error code",
		},
		[]string{"engine", "code"},
	)
)

func init() {
	prometheus.MustRegister(
		gaugeEvalTotalRequests,
		gaugeEvalTotalErrors,
		gaugeEvalTotalSuccess,
		gaugeEvalErrorsByCode,
	)
}

// countEvaluation updates the counters for one evaluated expression.
func countEvaluation(err error) {
	totalRequests.Add(1)
	if err == nil {
		totalSuccess.Add(1)
		return
	}
	totalErrors.Add(1)
	code := expr.ErrorCode(err)
	errorCodesMtx.Lock()
	errorCodes[code]++
	errorCodesMtx.Unlock()
}

func setGauges(engine string) {
	labels := prometheus.Labels{
		"engine": engine,
	}

	gaugeEvalTotalRequests.With(labels).Set(float64(totalRequests.Load()))
	gaugeEvalTotalErrors.With(labels).Set(float64(totalErrors.Load()))
	gaugeEvalTotalSuccess.With(labels).Set(float64(totalSuccess.Load()))

	errorCodesMtx.Lock()
	for code, n := range errorCodes {
		gaugeEvalErrorsByCode.With(prometheus.Labels{"engine": engine, "code": code}).Set(float64(n))
	}
	errorCodesMtx.Unlock()
}

func updateMetrics() {
	configMutex.Lock()
	prom := config.Prometheus
	configMutex.Unlock()
	if !prom.Enabled {
		return
	}

	engine := cmn.GetMicroServiceName()
	url := "http://" + prom.Host + ":" + strconv.Itoa(prom.Port)

	setGauges(engine)

	p := push.New(url, "sdbexpr_api").
		Collector(gaugeEvalTotalRequests).
		Collector(gaugeEvalTotalErrors).
		Collector(gaugeEvalTotalSuccess).
		Collector(gaugeEvalErrorsByCode)

	if err := p.Push(); err != nil {
		cmn.DebugMsg(cmn.DbgLvlError, "API: Could not push metrics: %v", err)
	} else {
		cmn.DebugMsg(cmn.DbgLvlDebug3, "API: Metrics pushed for engine=%s", engine)
	}
}

// -------------------------------------------
// API v1 Handlers and Middlewares
//--------------------------------------------

// initAPIv1 initializes the API v1 handlers
func initAPIv1() *http.ServeMux {
	mux := http.NewServeMux()

	// Health check
	healthCheckWithMiddlewares := SecurityHeadersMiddleware(RateLimitMiddleware(http.HandlerFunc(healthCheckHandler)))
	readyCheckWithMiddlewares := SecurityHeadersMiddleware(RateLimitMiddleware(http.HandlerFunc(readyCheckHandler)))

	mux.Handle("/v1/health", healthCheckWithMiddlewares)
	mux.Handle("/v1/health/", healthCheckWithMiddlewares)
	mux.Handle("/v1/ready", readyCheckWithMiddlewares)
	mux.Handle("/v1/ready/", readyCheckWithMiddlewares)

	// Evaluation handlers
	mux.Handle("/v1/eval", withPublicMiddlewares(evalHandler))
	mux.Handle("/v1/eval/batch", withPublicMiddlewares(evalBatchHandler))

	return mux
}

func withPublicMiddlewares(h http.HandlerFunc) http.Handler {
	return RecoverMiddleware(
		RequestIDMiddleware(
			SecurityHeadersMiddleware(
				RateLimitMiddleware(h),
			),
		),
	)
}

// RecoverMiddleware recovers from panics and returns a 500 error
func RecoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				cmn.DebugMsg(cmn.DbgLvlError, "Recovered from panic: %v", rec)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// RequestIDMiddleware tags every response with a new request ID
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(requestIDHeader, newRequestID())
		next.ServeHTTP(w, r)
	})
}

// RateLimitMiddleware is a middleware for rate limiting
func RateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !state().limiter.Allow() {
			cmn.DebugMsg(cmn.DbgLvlDebug, errRateLimitExceed)
			http.Error(w, errTooManyRequests, http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SecurityHeadersMiddleware adds security-related headers to responses
func SecurityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'")

		next.ServeHTTP(w, r)
	})
}

func healthCheckHandler(w http.ResponseWriter, _ *http.Request) {
	healthStatus := HealthCheck{
		Status: "OK",
	}
	handleErrorAndRespond(w, nil, healthStatus, "Error in health Check: ", http.StatusInternalServerError, http.StatusOK)
}

func readyCheckHandler(w http.ResponseWriter, _ *http.Request) {
	msg := ""
	switch getSysReady() {
	case 1: // Starting up
		msg = "STARTING UP"
	case 2: // Ready
		msg = "READY"
	default:
		msg = "NOT READY"
	}

	readyStatus := ReadyCheck{
		Status: msg,
	}
	handleErrorAndRespond(w, nil, readyStatus, "Error in ready Check: ", http.StatusInternalServerError, http.StatusOK)
}
