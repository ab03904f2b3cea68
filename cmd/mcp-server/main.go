// cmd/mcp-server/main.go: HTTP tool server for symdiff
//
// Exposes the symdiff tools as an HTTP endpoint for agent frameworks.
//
// Usage:
//   go run ./cmd/mcp-server -port 8080 -rps 20 -burst 40
//
// Tool call endpoint: POST /tool
// Schema endpoint:    GET  /schema
// Health endpoint:    GET  /health
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"golang.org/x/time/rate"

	symdiff "github.com/SadykovFK/SymbDiffProject"
)

const (
	maxBodyBytes = 1 << 20 // 1 MiB
	limiterWait  = 2 * time.Second
)

func main() {
	port := flag.Int("port", 8080, "Port to listen on")
	rps := flag.Float64("rps", 20, "Sustained tool calls per second")
	burst := flag.Int("burst", 40, "Tool call burst size")
	flag.Parse()

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("symdiff tool server listening on %s (%.1f req/s, burst %d)", addr, *rps, *burst)
	log.Printf("  POST /tool   - execute a tool call")
	log.Printf("  GET  /schema - tool schema for agent registration")
	log.Printf("  GET  /health - health check")

	srv := &http.Server{
		Addr:              addr,
		Handler:           newMux(rate.NewLimiter(rate.Limit(*rps), *burst)),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

func newMux(limiter *rate.Limiter) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/tool", limited(limiter, http.HandlerFunc(handleTool)))

	// GET /schema: return tool schema for agent registration
	mux.HandleFunc("/schema", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, symdiff.ToolSpec())
	})

	// GET /health: liveness check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})
	return mux
}

// limited waits for a limiter token, giving up with 429 after limiterWait or
// when the client goes away.
func limited(limiter *rate.Limiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), limiterWait)
		defer cancel()
		if err := limiter.Wait(ctx); err != nil {
			log.Printf("rate limited %s: %v", r.RemoteAddr, err)
			writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// POST /tool: handle a tool call
func handleTool(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("panic in /tool: %v\n%s", rec, string(debug.Stack()))
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	}()

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req symdiff.ToolRequest
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	// Ensure there's no trailing junk.
	if dec.More() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: trailing data"})
		return
	}

	writeJSON(w, http.StatusOK, symdiff.HandleToolCall(req))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
