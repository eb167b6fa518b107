package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/pathwalk/pathwalk/internal/config"
	"github.com/pathwalk/pathwalk/internal/logging"
	"github.com/pathwalk/pathwalk/internal/observability"
	"github.com/pathwalk/pathwalk/internal/ops"
	"github.com/pathwalk/pathwalk/internal/ratelimit"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Request is the JSON body accepted by every /v1/<op> route.
type Request struct {
	Style    string   `json:"style"`
	Paths    []string `json:"paths"`
	Value    string   `json:"value"`
	Match    string   `json:"match"`
	Reverse  bool     `json:"reverse"`
	Capacity int      `json:"capacity"`
}

type errorBody struct {
	Error string `json:"error"`
}

type Server struct {
	router  *Router
	style   config.StyleMode
	limits  config.Limits
	rate    config.RateLimitConfig
	limiter *ratelimit.Limiter

	opLog   *logging.OpLogger
	metrics *observability.Metrics
	log     zerolog.Logger

	requestCount uint64
}

func New(cfg *config.Config, log zerolog.Logger) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}

	s := &Server{
		router: NewRouter(),
		style:  cfg.Style,
		limits: cfg.Server.Limits,
		rate:   cfg.RateLimit,
		log:    log,
	}
	if cfg.RateLimit.Enabled {
		s.limiter = ratelimit.NewLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}
	return s, nil
}

func (s *Server) SetOpLogger(logger *logging.OpLogger) {
	s.opLog = logger
}

func (s *Server) SetMetrics(metrics *observability.Metrics) {
	s.metrics = metrics
}

// Handler wraps the server in the configured request timeout.
func (s *Server) Handler() http.Handler {
	if s.limits.Timeout <= 0 {
		return s
	}
	return http.TimeoutHandler(s, s.limits.Timeout, `{"error":"request timed out"}`)
}

// PruneLoop drops idle rate limit buckets every interval until ctx ends.
func (s *Server) PruneLoop(ctx context.Context, interval time.Duration) {
	if s.limiter == nil {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := s.limiter.Prune(now); n > 0 {
				s.log.Debug().Int("buckets", n).Msg("pruned rate limit buckets")
			}
		}
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	route, ok := s.router.Match(r.URL.Path)
	if ok && route.Op == "" {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
		return
	}

	entry := logging.Op{
		Timestamp: start.UTC(),
		RequestID: s.newRequestID(),
		ClientIP:  clientIP(r),
		Op:        route.Op,
	}
	w.Header().Set("X-Request-Id", entry.RequestID)

	if !ok {
		s.fail(w, entry, start, http.StatusNotFound, "no such operation", "")
		return
	}

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		s.fail(w, entry, start, http.StatusMethodNotAllowed, "method not allowed", "")
		return
	}

	if r.ContentLength > s.limits.MaxBodyBytes && s.limits.MaxBodyBytes > 0 {
		s.fail(w, entry, start, http.StatusRequestEntityTooLarge, "request body too large", "")
		return
	}
	if s.limits.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.limits.MaxBodyBytes)
	}

	ratelimitLabel := ""
	if s.limiter != nil {
		keyType := ratelimit.KeyType(s.rate.Key)
		ratelimitLabel = string(keyType)
		if !s.limiter.Allow(keyType.Key(entry.ClientIP, route.Op), time.Now()) {
			entry.RateLimited = true
			s.fail(w, entry, start, rateLimitStatus(s.rate.StatusCode), "rate limit exceeded", ratelimitLabel)
			return
		}
	}

	var req Request
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.fail(w, entry, start, http.StatusRequestEntityTooLarge, "request body too large", ratelimitLabel)
			return
		}
		s.fail(w, entry, start, http.StatusBadRequest, "invalid request body: "+err.Error(), ratelimitLabel)
		return
	}
	entry.Inputs = req.Paths
	entry.Value = req.Value

	if status, msg := s.checkLimits(req); status != 0 {
		s.fail(w, entry, start, status, msg, ratelimitLabel)
		return
	}

	mode := s.style
	if req.Style != "" {
		mode = config.StyleMode(req.Style)
		if !mode.Valid() {
			s.fail(w, entry, start, http.StatusBadRequest, fmt.Sprintf("unknown style %q", req.Style), ratelimitLabel)
			return
		}
	}
	style := mode.Resolve(req.Paths...)
	entry.Style = style.String()

	res, err := ops.Run(route.Op, style, ops.Input{
		Paths:    req.Paths,
		Value:    req.Value,
		Match:    req.Match,
		Reverse:  req.Reverse,
		Capacity: req.Capacity,
	})
	if err != nil {
		s.fail(w, entry, start, statusFor(err), err.Error(), ratelimitLabel)
		return
	}

	entry.Result = res.Result
	entry.Length = res.Length
	entry.Truncated = res.Truncated
	entry.StatusCode = http.StatusOK
	writeJSON(w, http.StatusOK, res)
	s.record(entry, start, ratelimitLabel)
}

func (s *Server) checkLimits(req Request) (int, string) {
	if s.limits.MaxPaths > 0 && len(req.Paths) > s.limits.MaxPaths {
		return http.StatusBadRequest, fmt.Sprintf("at most %d paths per request", s.limits.MaxPaths)
	}
	if s.limits.MaxPathBytes > 0 {
		for i, p := range req.Paths {
			if len(p) > s.limits.MaxPathBytes {
				return http.StatusRequestEntityTooLarge, fmt.Sprintf("paths[%d] exceeds %d bytes", i, s.limits.MaxPathBytes)
			}
		}
		if len(req.Value) > s.limits.MaxPathBytes {
			return http.StatusRequestEntityTooLarge, fmt.Sprintf("value exceeds %d bytes", s.limits.MaxPathBytes)
		}
	}
	if req.Capacity < 0 {
		return http.StatusBadRequest, "capacity must be >= 0"
	}
	if s.limits.MaxCapacity > 0 && req.Capacity > s.limits.MaxCapacity {
		return http.StatusRequestEntityTooLarge, fmt.Sprintf("capacity exceeds %d bytes", s.limits.MaxCapacity)
	}
	return 0, ""
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ops.ErrUnknownOp):
		return http.StatusNotFound
	case errors.Is(err, ops.ErrNoCommonRoot):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

func (s *Server) fail(w http.ResponseWriter, entry logging.Op, start time.Time, status int, msg, ratelimitLabel string) {
	entry.StatusCode = status
	entry.Error = msg
	writeJSON(w, status, errorBody{Error: msg})
	s.record(entry, start, ratelimitLabel)
}

func (s *Server) record(entry logging.Op, start time.Time, ratelimitLabel string) {
	entry.DurationMS = time.Since(start).Milliseconds()
	if s.opLog != nil {
		if err := s.opLog.Write(entry); err != nil {
			s.log.Warn().Err(err).Str("request_id", entry.RequestID).Msg("op log write failed")
		}
	}
	s.metrics.Observe(entry, ratelimitLabel)

	s.log.Debug().
		Str("request_id", entry.RequestID).
		Str("op", entry.Op).
		Int("status", entry.StatusCode).
		Int64("duration_ms", entry.DurationMS).
		Msg("request")
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (s *Server) newRequestID() string {
	var buf [12]byte
	if _, err := rand.Read(buf[:]); err == nil {
		return hex.EncodeToString(buf[:])
	}
	value := atomic.AddUint64(&s.requestCount, 1)
	return fmt.Sprintf("req-%d", value)
}

func rateLimitStatus(code int) int {
	if code <= 0 {
		return http.StatusTooManyRequests
	}
	return code
}

func clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}
