package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bi-demo/internal/domain"
)

func mysqlItem(id, table string) domain.DataSourceItem {
	return domain.DataSourceItem{
		ID:         id,
		Table:      table,
		DataSource: mysqlSource("northwind"),
	}
}

func TestTemplater_StoredProcedureBindsIdentity(t *testing.T) {
	e := newTestEngine(t)
	rc := e.UserContext("userId:abc-123")

	got := e.ResolveDataSourceItem(rc, mysqlItem("sp_customer_orders", ""))

	assert.Equal(t, domain.ItemStoredProcedure, got.Kind)
	assert.Equal(t, "sp_customer_orders", got.Procedure)
	require.NotNil(t, got.ProcedureParams)
	assert.Equal(t, "abc-123", got.ProcedureParams["customer"])
	assert.Empty(t, got.CustomQuery)
}

func TestTemplater_StoredProcedureRejectsUnsafeIdentity(t *testing.T) {
	e := newTestEngine(t)
	rc := e.UserContext("userId:; DROP TABLE x")

	got := e.ResolveDataSourceItem(rc, mysqlItem("sp_customer_orders", ""))

	assert.Equal(t, "0", got.ProcedureParams["customer"])
}

func TestTemplater_CustomerOrders(t *testing.T) {
	e := newTestEngine(t)
	rc := e.UserContext("userId:7")

	got := e.ResolveDataSourceItem(rc, mysqlItem("customer_orders", ""))

	assert.Equal(t, domain.ItemAdHocQuery, got.Kind)
	assert.Equal(t, "SELECT * FROM customer_orders WHERE customer_id = 7", got.CustomQuery)
}

func TestTemplater_CustomerOrders_SentinelIdentity(t *testing.T) {
	e := newTestEngine(t)
	rc := e.UserContext("")

	got := e.ResolveDataSourceItem(rc, mysqlItem("customer_orders", ""))

	assert.Equal(t, "SELECT * FROM customer_orders WHERE customer_id = 'guest'", got.CustomQuery)
}

func TestTemplater_CustomerOrdersDetails(t *testing.T) {
	e := newTestEngine(t)

	rc := e.UserContext("userId:7,orderId:1001")
	got := e.ResolveDataSourceItem(rc, mysqlItem("customer_orders_details", ""))
	assert.Equal(t, "SELECT * FROM customer_orders_details WHERE order_id = 1001", got.CustomQuery)

	// Missing order id degrades to NULL rather than failing.
	rc = e.UserContext("userId:7")
	got = e.ResolveDataSourceItem(rc, mysqlItem("customer_orders_details", ""))
	assert.Equal(t, "SELECT * FROM customer_orders_details WHERE order_id = NULL", got.CustomQuery)
}

func TestTemplater_CustomersTableScopedByRole(t *testing.T) {
	e := newTestEngine(t)

	admin := e.UserContext("userId:11")
	got := e.ResolveDataSourceItem(admin, mysqlItem("tables/customers", "customers"))
	assert.Equal(t, "SELECT * FROM customers", got.CustomQuery)

	user := e.UserContext("userId:ALFKI")
	got = e.ResolveDataSourceItem(user, mysqlItem("tables/customers", "customers"))
	assert.Equal(t, "SELECT * FROM customers WHERE id = 'ALFKI'", got.CustomQuery)
}

func TestTemplater_UnknownItemPassesThrough(t *testing.T) {
	e := newTestEngine(t)
	rc := e.UserContext("userId:7")

	item := mysqlItem("products", "products")
	got := e.ResolveDataSourceItem(rc, item)

	assert.Empty(t, got.CustomQuery)
	assert.Empty(t, got.Procedure)
	assert.Equal(t, item.ID, got.ID)
	assert.Equal(t, item.Table, got.Table)
	// The data source is still rewritten even when the item is untouched.
	assert.Equal(t, "db.internal", got.DataSource.Host)
}

func TestTemplater_OtherSourceKindUntouched(t *testing.T) {
	e := newTestEngine(t)
	rc := e.UserContext("userId:7")

	item := domain.DataSourceItem{
		ID:         "customer_orders",
		DataSource: domain.DataSource{Kind: domain.SourceOther, Host: "elsewhere"},
	}
	got := e.ResolveDataSourceItem(rc, item)
	assert.Equal(t, item, got)
}
