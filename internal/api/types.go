package api

import "bi-demo/internal/domain"

// Wire representations of the callback payloads exchanged with the
// embedding framework.

// DataSource is the wire form of a dashboard data source descriptor.
type DataSource struct {
	Kind     string `json:"kind"`
	ID       string `json:"id,omitempty"`
	Host     string `json:"host,omitempty"`
	Database string `json:"database,omitempty"`
	Schema   string `json:"schema,omitempty"`
	Port     int    `json:"port,omitempty"`
}

// DataSourceItem is the wire form of a catalog item descriptor.
type DataSourceItem struct {
	Kind            string         `json:"kind,omitempty"`
	ID              string         `json:"id,omitempty"`
	DataSource      DataSource     `json:"dataSource"`
	Table           string         `json:"table,omitempty"`
	Procedure       string         `json:"procedure,omitempty"`
	ProcedureParams map[string]any `json:"procedureParameters,omitempty"`
	CustomQuery     string         `json:"customQuery,omitempty"`
}

// Credential is the wire form of a selected data-source credential.
type Credential struct {
	Mode     string `json:"mode"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

// UserContext is the wire form of a derived request context. The connection
// password is never serialized.
type UserContext struct {
	UserID        string   `json:"userId"`
	OrderID       string   `json:"orderId,omitempty"`
	Role          string   `json:"role"`
	AllowedTables []string `json:"allowedTables,omitempty"`
	Host          string   `json:"host"`
	Database      string   `json:"database"`
	Schema        string   `json:"schema,omitempty"`
	Port          int      `json:"port,omitempty"`
}

// FilterResult is the verdict of a filter callback.
type FilterResult struct {
	Allowed bool `json:"allowed"`
}

// AuditEntry is the wire form of one recorded filter decision.
type AuditEntry struct {
	ID         string `json:"id"`
	CreatedAt  string `json:"createdAt"`
	RequestID  string `json:"requestId"`
	UserID     string `json:"userId"`
	Role       string `json:"role"`
	ObjectType string `json:"objectType"`
	ObjectName string `json:"objectName"`
	Decision   string `json:"decision"`
}

// --- mapping helpers ---

func dataSourceToDomain(ds DataSource) domain.DataSource {
	return domain.DataSource{
		Kind:     domain.SourceKind(ds.Kind),
		ID:       ds.ID,
		Host:     ds.Host,
		Database: ds.Database,
		Schema:   ds.Schema,
		Port:     ds.Port,
	}
}

func dataSourceToAPI(ds domain.DataSource) DataSource {
	return DataSource{
		Kind:     string(ds.Kind),
		ID:       ds.ID,
		Host:     ds.Host,
		Database: ds.Database,
		Schema:   ds.Schema,
		Port:     ds.Port,
	}
}

func itemToDomain(it DataSourceItem) domain.DataSourceItem {
	return domain.DataSourceItem{
		Kind:            domain.ItemKind(it.Kind),
		ID:              it.ID,
		DataSource:      dataSourceToDomain(it.DataSource),
		Table:           it.Table,
		Procedure:       it.Procedure,
		ProcedureParams: it.ProcedureParams,
		CustomQuery:     it.CustomQuery,
	}
}

func itemToAPI(it domain.DataSourceItem) DataSourceItem {
	return DataSourceItem{
		Kind:            string(it.Kind),
		ID:              it.ID,
		DataSource:      dataSourceToAPI(it.DataSource),
		Table:           it.Table,
		Procedure:       it.Procedure,
		ProcedureParams: it.ProcedureParams,
		CustomQuery:     it.CustomQuery,
	}
}

func credentialToAPI(c domain.Credential) Credential {
	return Credential{
		Mode:     string(c.Mode),
		Username: c.Username,
		Password: c.Password,
	}
}

func contextToAPI(rc domain.RequestContext) UserContext {
	return UserContext{
		UserID:        rc.UserID,
		OrderID:       rc.OrderID,
		Role:          string(rc.Role),
		AllowedTables: rc.AllowedTables,
		Host:          rc.Connection.Host,
		Database:      rc.Connection.Database,
		Schema:        rc.Connection.Schema,
		Port:          rc.Connection.Port,
	}
}
