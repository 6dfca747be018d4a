package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"document-ops-server/internal/config"
	appErrors "document-ops-server/internal/errors"
	"document-ops-server/internal/mcp"
	"document-ops-server/internal/models"
	"document-ops-server/internal/ops"
	"document-ops-server/internal/service"
)

// HTTPTransport exposes each tool as POST /tools/{name}, plus GET /health and
// GET /capabilities. Tool failures travel inside the envelope with a 200
// status; only protocol-level problems map to HTTP error codes.
type HTTPTransport struct {
	processor *mcp.Processor
	service   service.DocumentOperationService
	logger    ops.Logger
	server    *http.Server
	maxBody   int64
}

// NewHTTPTransport creates a new HTTPTransport listening on the configured
// port.
func NewHTTPTransport(processor *mcp.Processor, svc service.DocumentOperationService, logger ops.Logger, cfg *config.Config) (*HTTPTransport, error) {
	if processor == nil {
		return nil, fmt.Errorf("processor cannot be nil")
	}
	if svc == nil {
		return nil, fmt.Errorf("service cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	t := &HTTPTransport{
		processor: processor,
		service:   svc,
		logger:    logger,
		// Request bodies carry document content inline, so the body cap
		// follows the document size cap with headroom for JSON framing.
		maxBody: int64(cfg.MaxFileSizeMB)*1024*1024 + 1024*1024,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/tools/", t.handleToolCall)
	mux.HandleFunc("/health", t.handleHealth)
	mux.HandleFunc("/capabilities", t.handleCapabilities)

	timeout := time.Duration(cfg.OperationTimeoutSec) * time.Second
	t.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      mux,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		IdleTimeout:  2 * timeout,
	}
	return t, nil
}

// Run serves HTTP until Shutdown is called or the listener fails.
func (t *HTTPTransport) Run() error {
	t.logger.Printf("HTTP transport listening on %s", t.server.Addr)
	if err := t.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown stops the server, waiting for in-flight requests up to the context
// deadline.
func (t *HTTPTransport) Shutdown(ctx context.Context) error {
	return t.server.Shutdown(ctx)
}

func (t *HTTPTransport) handleToolCall(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		t.writeError(w, appErrors.NewInvalidRequestError("only POST is allowed"), http.StatusMethodNotAllowed)
		return
	}
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/json") {
		t.writeError(w, appErrors.NewInvalidRequestError(
			fmt.Sprintf("unsupported content type %q", ct)), http.StatusUnsupportedMediaType)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/tools/")
	if name == "" || strings.Contains(name, "/") {
		t.writeError(w, appErrors.NewInvalidRequestError("missing tool name"), http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, t.maxBody))
	if err != nil {
		t.writeError(w, appErrors.NewInvalidRequestError(
			fmt.Sprintf("reading request body: %v", err)), http.StatusRequestEntityTooLarge)
		return
	}
	if len(body) == 0 {
		body = []byte("{}")
	}

	result, errDetail := t.processor.CallTool(name, body)
	if errDetail != nil {
		t.writeError(w, errDetail, appErrors.MapErrorToHTTPStatus(errDetail.Code))
		return
	}
	t.writeJSON(w, http.StatusOK, result)
}

func (t *HTTPTransport) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		t.writeError(w, appErrors.NewInvalidRequestError("only GET is allowed"), http.StatusMethodNotAllowed)
		return
	}
	t.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (t *HTTPTransport) handleCapabilities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		t.writeError(w, appErrors.NewInvalidRequestError("only GET is allowed"), http.StatusMethodNotAllowed)
		return
	}
	t.writeJSON(w, http.StatusOK, t.service.Capabilities())
}

func (t *HTTPTransport) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		t.logger.Printf("ERROR: writing response: %v", err)
	}
}

func (t *HTTPTransport) writeError(w http.ResponseWriter, detail *models.ErrorDetail, status int) {
	t.writeJSON(w, status, appErrors.ToErrorResponse(detail))
}
