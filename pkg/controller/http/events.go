package http

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/xlrbot/pkg/controller/hostbus"
	"github.com/m-mizutani/xlrbot/pkg/domain/model"
	"github.com/m-mizutani/xlrbot/pkg/utils/async"
)

// SignatureHeader carries the HMAC-SHA256 of the request body
const SignatureHeader = "X-Xlr-Signature-256"

const maxEventBodySize = 8 << 20

// EventHandler receives CI creation events forwarded by the host
type EventHandler struct {
	processor    *hostbus.EventProcessor
	secret       string
	asyncProcess bool
}

// NewEventHandler creates a new EventHandler. An empty secret disables
// signature verification.
func NewEventHandler(processor *hostbus.EventProcessor, secret string, asyncProcess bool) *EventHandler {
	return &EventHandler{
		processor:    processor,
		secret:       secret,
		asyncProcess: asyncProcess,
	}
}

// CreateCi handles a single CI creation
func (h *EventHandler) CreateCi(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, model.EventKindCreateCi)
}

// CreateCis handles creation of a list of CIs
func (h *EventHandler) CreateCis(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, model.EventKindCreateCis)
}

// CiEvent handles a generic CI event
func (h *EventHandler) CiEvent(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, model.EventKindCiEvent)
}

func (h *EventHandler) handle(w http.ResponseWriter, r *http.Request, kind model.EventKind) {
	ctx := r.Context()
	logger := ctxlog.From(ctx)

	// Read payload
	body, err := io.ReadAll(io.LimitReader(r.Body, maxEventBodySize))
	if err != nil {
		logger.Error("Failed to read request body", "error", err)
		writeError(w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	// Verify signature
	if h.secret != "" && !h.verifySignature(body, r.Header.Get(SignatureHeader)) {
		logger.Warn("Invalid host event signature", "kind", kind)
		writeError(w, goerr.New("invalid signature"), http.StatusUnauthorized)
		return
	}

	if h.asyncProcess {
		// Reject malformed payloads before acknowledging
		if _, err := hostbus.Decode(kind, body); err != nil {
			writeError(w, err, http.StatusBadRequest)
			return
		}

		async.Dispatch(ctx, func(ctx context.Context) error {
			_, err := h.processor.ProcessEvent(ctx, kind, body)
			return err
		})
		writeJSON(ctx, w, http.StatusAccepted, map[string]string{"status": "accepted"})
		return
	}

	report, err := h.processor.ProcessEvent(ctx, kind, body)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, hostbus.ErrMalformedEvent) {
			status = http.StatusBadRequest
		}
		writeError(w, err, status)
		return
	}

	writeJSON(ctx, w, http.StatusOK, report)
}

// verifySignature verifies the event signature
func (h *EventHandler) verifySignature(payload []byte, signature string) bool {
	if signature == "" {
		return false
	}

	// Remove "sha256=" prefix if present
	signature = strings.TrimPrefix(signature, "sha256=")

	// Calculate HMAC-SHA256
	mac := hmac.New(sha256.New, []byte(h.secret))
	mac.Write(payload)
	expectedMAC := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(signature), []byte(expectedMAC))
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ctxlog.From(ctx).Error("Failed to encode response", "error", err)
	}
}
