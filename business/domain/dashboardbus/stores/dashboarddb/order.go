package dashboarddb

import (
	"fmt"

	"github.com/jcpaschoal/biadmin/business/domain/dashboardbus"
	"github.com/jcpaschoal/biadmin/business/sdk/order"
)

var orderByFields = map[string]string{
	dashboardbus.OrderByID:        "d.dashboard_id",
	dashboardbus.OrderByName:      "d.name",
	dashboardbus.OrderByCompanyID: "d.company_id",
	dashboardbus.OrderByActive:    "d.is_active",
	dashboardbus.OrderByCreatedAt: "d.created_at",
}

func orderByClause(orderBy order.By) (string, error) {
	by, exists := orderByFields[orderBy.Field]
	if !exists {
		return "", fmt.Errorf("field %q does not exist", orderBy.Field)
	}

	return " ORDER BY " + by + " " + orderBy.Direction, nil
}
