// Package api exposes the policy engine's callback contracts as JSON
// endpoints for the embedding framework's host integration.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"bi-demo/internal/audit"
	"bi-demo/internal/domain"
	"bi-demo/internal/middleware"
	"bi-demo/internal/policy"
)

// Handler serves the /v1 callback endpoints. Each request derives its
// RequestContext from the identity header exactly once and feeds it to the
// requested pipeline stage.
type Handler struct {
	engine *policy.Engine
	audit  *audit.Store
	logger *slog.Logger
}

// NewHandler creates a Handler with its dependencies.
func NewHandler(engine *policy.Engine, auditStore *audit.Store, logger *slog.Logger) *Handler {
	return &Handler{engine: engine, audit: auditStore, logger: logger}
}

// Routes returns the router for the /v1 API surface.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/context", h.getContext)
	r.Post("/datasource/credentials", h.postCredentials)
	r.Post("/datasource", h.postDataSource)
	r.Post("/datasource/item", h.postDataSourceItem)
	r.Post("/datasource/filter", h.postFilterDataSource)
	r.Post("/datasource/item/filter", h.postFilterDataSourceItem)
	r.Get("/audit/decisions", h.getAuditDecisions)
	return r
}

// requestContext derives the per-request policy context from the identity
// header. Never fails: a missing or malformed header resolves to the
// sentinel identity.
func (h *Handler) requestContext(r *http.Request) domain.RequestContext {
	return h.engine.UserContext(r.Header.Get(policy.IdentityHeader))
}

func (h *Handler) getContext(w http.ResponseWriter, r *http.Request) {
	rc := h.requestContext(r)
	writeJSON(w, http.StatusOK, contextToAPI(rc))
}

func (h *Handler) postCredentials(w http.ResponseWriter, r *http.Request) {
	var ds DataSource
	if err := json.NewDecoder(r.Body).Decode(&ds); err != nil {
		writeError(w, domain.ErrValidation("invalid data source payload: %v", err))
		return
	}
	rc := h.requestContext(r)
	writeJSON(w, http.StatusOK, credentialToAPI(h.engine.Authenticate(rc, dataSourceToDomain(ds))))
}

func (h *Handler) postDataSource(w http.ResponseWriter, r *http.Request) {
	var ds DataSource
	if err := json.NewDecoder(r.Body).Decode(&ds); err != nil {
		writeError(w, domain.ErrValidation("invalid data source payload: %v", err))
		return
	}
	rc := h.requestContext(r)
	writeJSON(w, http.StatusOK, dataSourceToAPI(h.engine.ResolveDataSource(rc, dataSourceToDomain(ds))))
}

func (h *Handler) postDataSourceItem(w http.ResponseWriter, r *http.Request) {
	var item DataSourceItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, domain.ErrValidation("invalid data source item payload: %v", err))
		return
	}
	rc := h.requestContext(r)
	writeJSON(w, http.StatusOK, itemToAPI(h.engine.ResolveDataSourceItem(rc, itemToDomain(item))))
}

func (h *Handler) postFilterDataSource(w http.ResponseWriter, r *http.Request) {
	var ds DataSource
	if err := json.NewDecoder(r.Body).Decode(&ds); err != nil {
		writeError(w, domain.ErrValidation("invalid data source payload: %v", err))
		return
	}
	rc := h.requestContext(r)
	allowed := h.engine.FilterDataSource(rc, dataSourceToDomain(ds))
	h.recordDecision(r, rc, audit.ObjectDataSource, ds.Database, allowed)
	writeJSON(w, http.StatusOK, FilterResult{Allowed: allowed})
}

func (h *Handler) postFilterDataSourceItem(w http.ResponseWriter, r *http.Request) {
	var item DataSourceItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeError(w, domain.ErrValidation("invalid data source item payload: %v", err))
		return
	}
	rc := h.requestContext(r)
	allowed := h.engine.FilterDataSourceItem(rc, itemToDomain(item))

	name := item.Table
	if name == "" {
		name = item.Procedure
	}
	h.recordDecision(r, rc, audit.ObjectItem, name, allowed)
	writeJSON(w, http.StatusOK, FilterResult{Allowed: allowed})
}

func (h *Handler) getAuditDecisions(w http.ResponseWriter, r *http.Request) {
	rc := h.requestContext(r)
	if rc.Role != domain.RoleAdmin {
		writeError(w, domain.ErrAccessDenied("audit trail requires the Admin role"))
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, domain.ErrValidation("limit must be a positive integer"))
			return
		}
		limit = n
	}

	entries, err := h.audit.ListRecent(r.Context(), limit)
	if err != nil {
		h.logger.Error("list audit decisions", "error", err)
		writeError(w, err)
		return
	}

	out := make([]AuditEntry, len(entries))
	for i, e := range entries {
		out[i] = AuditEntry{
			ID:         e.ID,
			CreatedAt:  e.CreatedAt.Format(time.RFC3339),
			RequestID:  e.RequestID,
			UserID:     e.UserID,
			Role:       e.Role,
			ObjectType: e.ObjectType,
			ObjectName: e.ObjectName,
			Decision:   e.Decision,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

// recordDecision writes a filter verdict to the audit trail. Audit failures
// are logged, never surfaced: a broken audit store must not block dashboard
// rendering.
func (h *Handler) recordDecision(r *http.Request, rc domain.RequestContext, objectType, objectName string, allowed bool) {
	decision := audit.DecisionDeny
	if allowed {
		decision = audit.DecisionAllow
	}
	err := h.audit.Record(r.Context(), audit.Entry{
		RequestID:  middleware.RequestIDFromContext(r.Context()),
		UserID:     rc.UserID,
		Role:       string(rc.Role),
		ObjectType: objectType,
		ObjectName: objectName,
		Decision:   decision,
	})
	if err != nil {
		h.logger.Error("record filter decision", "error", err,
			"object_type", objectType, "object_name", objectName)
	}
}
