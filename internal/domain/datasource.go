package domain

// SourceKind is the closed set of data-source backends the policy engine
// distinguishes. Only the MySQL kind is rewritten; every other kind passes
// through each pipeline stage unmodified.
type SourceKind string

const (
	SourceMySQL SourceKind = "mysql"
	SourceOther SourceKind = "other"
)

// ItemKind describes how a catalog item resolves to data.
type ItemKind string

const (
	ItemTable           ItemKind = "table"
	ItemStoredProcedure ItemKind = "procedure"
	ItemAdHocQuery      ItemKind = "query"
)

// DataSource describes one backing data source of a dashboard.
type DataSource struct {
	Kind     SourceKind
	ID       string
	Host     string
	Database string
	Schema   string
	Port     int
}

// DataSourceItem is a single addressable table, stored procedure, or query
// template exposed by a data source. Ephemeral: produced by the embedding
// framework per catalog entry, possibly rewritten by the policy engine,
// never persisted.
type DataSourceItem struct {
	Kind       ItemKind
	ID         string
	DataSource DataSource

	Table           string
	Procedure       string
	ProcedureParams map[string]any
	CustomQuery     string
}

// CredentialMode selects how the connecting layer authenticates.
type CredentialMode string

const (
	// CredentialUsernamePassword carries an explicit username/password pair.
	CredentialUsernamePassword CredentialMode = "username_password"
	// CredentialIntegrated carries no secret; the connecting layer uses
	// ambient/trusted authentication.
	CredentialIntegrated CredentialMode = "integrated"
)

// Credential is the authentication material handed back to the embedding
// framework for one data source.
type Credential struct {
	Mode     CredentialMode
	Username string
	Password string
}
