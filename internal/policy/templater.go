package policy

import (
	"fmt"

	"bi-demo/internal/domain"
)

// Catalog item identifiers with a dedicated templating rule. Anything else
// falls through to the generic table branch or passes through untouched.
const (
	itemCustomerOrdersProc    = "sp_customer_orders"
	itemCustomerOrders        = "customer_orders"
	itemCustomerOrdersDetails = "customer_orders_details"
	tableCustomers            = "customers"
)

// templateItem applies the per-item query rewriting rules. Stored-procedure
// parameters are bound, never interpolated; the ad-hoc branches interpolate
// only sanitized values because the generated text is handed to the
// rendering engine as literal SQL.
func (e *Engine) templateItem(rc domain.RequestContext, item domain.DataSourceItem) domain.DataSourceItem {
	if item.DataSource.Kind != domain.SourceMySQL {
		return item
	}

	switch item.ID {
	case itemCustomerOrdersProc:
		item.Kind = domain.ItemStoredProcedure
		item.Procedure = itemCustomerOrdersProc
		item.ProcedureParams = map[string]any{
			"customer": SanitizeProcedureParam(rc.UserID),
		}

	case itemCustomerOrders:
		item.Kind = domain.ItemAdHocQuery
		item.CustomQuery = fmt.Sprintf(
			"SELECT * FROM customer_orders WHERE customer_id = %s",
			SanitizeLiteral(rc.UserID))

	case itemCustomerOrdersDetails:
		item.Kind = domain.ItemAdHocQuery
		item.CustomQuery = fmt.Sprintf(
			"SELECT * FROM customer_orders_details WHERE order_id = %s",
			SanitizeLiteral(rc.OrderID))

	default:
		// Generic catalog browse path: the customers table is scoped to the
		// caller unless they are an admin.
		if item.Table == tableCustomers {
			item.Kind = domain.ItemAdHocQuery
			if rc.Role == domain.RoleAdmin {
				item.CustomQuery = "SELECT * FROM customers"
			} else {
				item.CustomQuery = fmt.Sprintf(
					"SELECT * FROM customers WHERE id = %s",
					SanitizeLiteral(rc.UserID))
			}
		}
	}
	return item
}
