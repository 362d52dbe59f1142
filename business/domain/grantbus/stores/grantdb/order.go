package grantdb

import (
	"fmt"

	"github.com/jcpaschoal/biadmin/business/domain/grantbus"
	"github.com/jcpaschoal/biadmin/business/sdk/order"
)

var orderByFields = map[string]string{
	grantbus.OrderByUserID:        "g.user_id",
	grantbus.OrderByDashboardID:   "g.dashboard_id",
	grantbus.OrderByUserEmail:     "u.email",
	grantbus.OrderByDashboardName: "d.name",
}

func orderByClause(orderBy order.By) (string, error) {
	by, exists := orderByFields[orderBy.Field]
	if !exists {
		return "", fmt.Errorf("field %q does not exist", orderBy.Field)
	}

	return " ORDER BY " + by + " " + orderBy.Direction, nil
}
