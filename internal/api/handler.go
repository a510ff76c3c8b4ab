package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/ejmvar/ey-cli/internal/catalog"
	"github.com/ejmvar/ey-cli/internal/environment"
	"github.com/ejmvar/ey-cli/internal/flags"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// ResolverFactory builds a Resolver writing notices to out.
type ResolverFactory func(out io.Writer, logger *zap.Logger) environment.Resolver

// Handler exposes the create_env parse and resolve pipeline over HTTP.
type Handler struct {
	logger      *zap.Logger
	newResolver ResolverFactory

	clock func() time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// WithResolverFactory overrides how resolvers are built, primarily for tests.
func WithResolverFactory(factory ResolverFactory) HandlerOption {
	return func(h *Handler) {
		h.newResolver = factory
	}
}

// NewHandler constructs a Handler.
func NewHandler(logger *zap.Logger, opts ...HandlerOption) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &Handler{
		logger: logger,
		newResolver: func(out io.Writer, logger *zap.Logger) environment.Resolver {
			return environment.New(out, environment.WithLogger(logger))
		},
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleFlags(w http.ResponseWriter, r *http.Request) {
	_ = r
	table := flags.Table()
	resp := flagsResponse{Flags: make([]flagResponse, 0, len(table))}
	for _, spec := range table {
		entry := flagResponse{
			Name:       spec.Name,
			Type:       spec.Kind.String(),
			Help:       spec.Help,
			TakesValue: spec.TakesValue(),
			Default:    spec.Default,
			Allowed:    spec.Allowed,
		}
		if spec.Constraint == flags.ConstraintInstanceSize {
			entry.Allowed = catalog.InstanceSizes()
		}
		resp.Flags = append(resp.Flags, entry)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleInstanceSizes(w http.ResponseWriter, r *http.Request) {
	_ = r
	writeJSON(w, http.StatusOK, instanceSizesResponse{InstanceSizes: catalog.InstanceSizes()})
}

func (h *Handler) handleResolve(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, errorResponse{
				Error:   "Request too large",
				Details: fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit),
			})
			return
		}
		writeError(w, http.StatusBadRequest, errorResponse{Error: "Invalid request", Details: "unable to parse JSON payload"})
		return
	}

	parsed, err := flags.Parse(req.Args)
	if err != nil {
		writeFlagError(w, err)
		return
	}

	var notices bytes.Buffer
	resolver := h.newResolver(&notices, h.logger.With(zap.String("request_id", requestIDFromContext(r.Context()))))
	cfg, err := resolver.Resolve(parsed, environment.Defaults{
		EnvName:     req.EnvName,
		RubyVersion: req.RubyVersion,
	})
	if err != nil {
		if errors.Is(err, environment.ErrContractViolation) {
			h.logger.Error("resolver contract violation", zap.Error(err))
		}
		writeInternalError(w, err)
		return
	}

	resp := resolveResponse{
		Environment: cfg,
		Notices:     splitLines(notices.String()),
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeFlagError(w http.ResponseWriter, err error) {
	var flagErr *flags.FlagError
	switch {
	case flags.IsTerminal(err):
		errors.As(err, &flagErr)
		writeError(w, http.StatusUnprocessableEntity, errorResponse{
			Error:       "Invalid instance size",
			Details:     err.Error(),
			Flag:        flagErr.Flag,
			ValidValues: flagErr.Allowed,
		})
	case errors.As(err, &flagErr):
		writeError(w, http.StatusBadRequest, errorResponse{
			Error:       "Invalid flags",
			Details:     err.Error(),
			Flag:        flagErr.Flag,
			ValidValues: flagErr.Allowed,
		})
	case errors.Is(err, flags.ErrHelpRequested):
		writeError(w, http.StatusBadRequest, errorResponse{
			Error:      "Invalid flags",
			Details:    "--help is not supported here",
			Suggestion: "GET /api/flags lists every accepted flag",
		})
	default:
		writeInternalError(w, err)
	}
}

func splitLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type resolveRequest struct {
	Args        []string `json:"args"`
	EnvName     string   `json:"envName"`
	RubyVersion string   `json:"rubyVersion"`
}

type resolveResponse struct {
	Environment environment.Config `json:"environment"`
	Notices     []string           `json:"notices,omitempty"`
}

type flagResponse struct {
	Name       string   `json:"name"`
	Type       string   `json:"type"`
	Help       string   `json:"help"`
	TakesValue bool     `json:"takesValue"`
	Default    string   `json:"default,omitempty"`
	Allowed    []string `json:"allowed,omitempty"`
}

type flagsResponse struct {
	Flags []flagResponse `json:"flags"`
}

type instanceSizesResponse struct {
	InstanceSizes []string `json:"instanceSizes"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error       string   `json:"error"`
	Details     string   `json:"details,omitempty"`
	Flag        string   `json:"flag,omitempty"`
	ValidValues []string `json:"validValues,omitempty"`
	Suggestion  string   `json:"suggestion,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, resp errorResponse) {
	writeJSON(w, status, resp)
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, errorResponse{Error: "Internal error", Details: err.Error()})
}
