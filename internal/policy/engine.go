// Package policy implements the request-scoped access-policy pipeline for
// the embedded dashboard server: identity resolution, role classification,
// credential selection, connection rewriting, query templating, and
// authorization filtering.
//
// The engine holds only read-only configuration captured at startup. Every
// request gets its own immutable RequestContext, so concurrent requests
// never share mutable state and no stage performs blocking I/O.
package policy

import (
	"log/slog"
	"strings"

	"bi-demo/internal/config"
	"bi-demo/internal/domain"
)

// Engine evaluates access policy for the embedding framework's callbacks.
type Engine struct {
	conn       domain.ConnectionParams
	adminID    string
	sentinelID string
	allowedDBs map[string]struct{}
	userTables []string
	logger     *slog.Logger
}

// NewEngine builds an Engine from process configuration. The configuration
// is copied; later mutation of cfg does not affect the engine.
func NewEngine(cfg *config.Config, logger *slog.Logger) *Engine {
	allowedDBs := make(map[string]struct{}, len(cfg.AllowedDatabases))
	for _, db := range cfg.AllowedDatabases {
		allowedDBs[strings.ToLower(db)] = struct{}{}
	}
	userTables := make([]string, len(cfg.UserAllowedTables))
	for i, t := range cfg.UserAllowedTables {
		userTables[i] = strings.ToLower(t)
	}
	return &Engine{
		conn: domain.ConnectionParams{
			Host:     cfg.DBHost,
			Database: cfg.DBName,
			Username: cfg.DBUser,
			Password: cfg.DBPassword,
			Schema:   cfg.DBSchema,
			Port:     cfg.DBPort,
		},
		adminID:    cfg.AdminUserID,
		sentinelID: cfg.SentinelUserID,
		allowedDBs: allowedDBs,
		userTables: userTables,
		logger:     logger,
	}
}

// UserContext resolves the identity header value into a RequestContext.
// Invoked once per inbound request; the result feeds every other callback
// for that request.
func (e *Engine) UserContext(headerValue string) domain.RequestContext {
	userID, orderID := ParseIdentityHeader(headerValue)
	if userID == "" {
		// No authenticated user. The sentinel classifies as the
		// least-privileged role below.
		userID = e.sentinelID
	}

	role := e.Classify(userID)

	rc := domain.RequestContext{
		UserID:     userID,
		OrderID:    orderID,
		Role:       role,
		Connection: e.conn,
	}
	if role == domain.RoleUser {
		rc.AllowedTables = append([]string(nil), e.userTables...)
	}

	e.logger.Debug("resolved user context",
		"user_id", rc.UserID, "order_id", rc.OrderID, "role", rc.Role)
	return rc
}

// Classify maps an identity to a role. Total and deterministic: exactly the
// configured admin identity is Admin, every other identity (including the
// sentinel) is User.
func (e *Engine) Classify(userID string) domain.Role {
	if userID == e.adminID {
		return domain.RoleAdmin
	}
	return domain.RoleUser
}

// Authenticate returns the credential to use for a data source. MySQL
// sources get the explicit username/password from the request context; any
// other kind gets an integrated credential with no secret. Never errors.
func (e *Engine) Authenticate(rc domain.RequestContext, ds domain.DataSource) domain.Credential {
	if ds.Kind == domain.SourceMySQL {
		return domain.Credential{
			Mode:     domain.CredentialUsernamePassword,
			Username: rc.Connection.Username,
			Password: rc.Connection.Password,
		}
	}
	return domain.Credential{Mode: domain.CredentialIntegrated}
}

// ResolveDataSource overwrites a MySQL data source's connection coordinates
// from the request context. Other kinds pass through unchanged. Idempotent:
// applying it twice yields the same result.
func (e *Engine) ResolveDataSource(rc domain.RequestContext, ds domain.DataSource) domain.DataSource {
	if ds.Kind != domain.SourceMySQL {
		return ds
	}
	ds.Host = rc.Connection.Host
	ds.Database = rc.Connection.Database
	if rc.Connection.Port != 0 {
		ds.Port = rc.Connection.Port
	}
	if rc.Connection.Schema != "" {
		ds.Schema = rc.Connection.Schema
	}
	return ds
}

// ResolveDataSourceItem rewrites the item's data source and then applies
// query templating. This composes the connection rewrite and templater
// stages the way the embedding framework invokes them per catalog item.
func (e *Engine) ResolveDataSourceItem(rc domain.RequestContext, item domain.DataSourceItem) domain.DataSourceItem {
	item.DataSource = e.ResolveDataSource(rc, item.DataSource)
	return e.templateItem(rc, item)
}

// FilterDataSource decides whether an entire data source may be exposed.
// Only MySQL sources whose database is on the deployment allow-list are
// reachable, regardless of role.
func (e *Engine) FilterDataSource(rc domain.RequestContext, ds domain.DataSource) bool {
	if ds.Kind != domain.SourceMySQL {
		return false
	}
	_, ok := e.allowedDBs[strings.ToLower(ds.Database)]
	return ok
}

// FilterDataSourceItem decides whether a catalog item may be listed for the
// caller. Admin sees everything; User sees only items whose table or
// procedure name is on the allow-list. An item with neither name set is
// denied when a restriction is in place.
func (e *Engine) FilterDataSourceItem(rc domain.RequestContext, item domain.DataSourceItem) bool {
	if rc.Role == domain.RoleAdmin || rc.Unrestricted() {
		return true
	}
	if item.Table == "" && item.Procedure == "" {
		return false
	}
	if item.Table != "" && !rc.AllowsItem(item.Table) {
		return false
	}
	if item.Procedure != "" && !rc.AllowsItem(item.Procedure) {
		return false
	}
	return true
}
