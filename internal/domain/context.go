package domain

import (
	"context"
	"strings"
)

// Role is the coarse-grained privilege level derived from an identity.
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
)

// ConnectionParams are the relational backend connection settings attached to
// every request context. They are copied verbatim from process configuration;
// the role never changes which database is reached, only which tables and
// rows are visible.
type ConnectionParams struct {
	Host     string
	Database string
	Username string
	Password string
	Schema   string
	Port     int
}

// RequestContext is the immutable per-request bundle of identity, role,
// allow-list, and connection parameters threaded through every policy
// decision. Built once per inbound request; never mutated afterwards.
type RequestContext struct {
	UserID  string // resolved identity; sentinel value when unresolved
	OrderID string // auxiliary correlation id from the same header, "" if absent

	Role Role

	// AllowedTables is the set of table/procedure names visible to the User
	// role, lower-cased. Empty means no restriction (Admin).
	AllowedTables []string

	Connection ConnectionParams
}

// Unrestricted reports whether the context carries no item-level allow-list.
func (rc RequestContext) Unrestricted() bool {
	return len(rc.AllowedTables) == 0
}

// AllowsItem reports whether the named table or procedure is on the
// allow-list. Names are case-folded; a dot-qualified name such as
// "northwind.orders" matches on its final segment. An empty allow-list
// allows everything; an empty name is never allowed against a non-empty
// list.
func (rc RequestContext) AllowsItem(name string) bool {
	if rc.Unrestricted() {
		return true
	}
	if name == "" {
		return false
	}
	folded := strings.ToLower(name)
	last := folded
	if i := strings.LastIndex(folded, "."); i >= 0 {
		last = folded[i+1:]
	}
	for _, allowed := range rc.AllowedTables {
		if folded == allowed || last == allowed {
			return true
		}
	}
	return false
}

type requestContextKey struct{}

// WithRequestContext stores a RequestContext in the context.
func WithRequestContext(ctx context.Context, rc RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey{}, rc)
}

// RequestContextFrom extracts the RequestContext from the context.
func RequestContextFrom(ctx context.Context) (RequestContext, bool) {
	rc, ok := ctx.Value(requestContextKey{}).(RequestContext)
	return rc, ok
}
