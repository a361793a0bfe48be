package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func userContext(tables ...string) RequestContext {
	return RequestContext{UserID: "7", Role: RoleUser, AllowedTables: tables}
}

func TestAllowsItem(t *testing.T) {
	rc := userContext("customers", "orders", "order_details")

	assert.True(t, rc.AllowsItem("customers"))
	assert.True(t, rc.AllowsItem("Customers"), "case-folded match")
	assert.True(t, rc.AllowsItem("northwind.orders"), "final dot segment match")
	assert.True(t, rc.AllowsItem("NORTHWIND.Order_Details"))

	assert.False(t, rc.AllowsItem("employees"))
	assert.False(t, rc.AllowsItem("orders_details"), "near-miss names do not match")
	assert.False(t, rc.AllowsItem(""), "missing name denies against a restriction")
}

func TestAllowsItem_Unrestricted(t *testing.T) {
	rc := RequestContext{UserID: "11", Role: RoleAdmin}

	assert.True(t, rc.Unrestricted())
	assert.True(t, rc.AllowsItem("anything"))
	assert.True(t, rc.AllowsItem(""))
}

func TestRequestContextPlumbing(t *testing.T) {
	rc := userContext("customers")

	ctx := WithRequestContext(context.Background(), rc)
	got, ok := RequestContextFrom(ctx)
	assert.True(t, ok)
	assert.Equal(t, rc, got)

	_, ok = RequestContextFrom(context.Background())
	assert.False(t, ok)
}
