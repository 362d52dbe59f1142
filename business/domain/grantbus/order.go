package grantbus

import "github.com/jcpaschoal/biadmin/business/sdk/order"

// DefaultOrderBy represents the default way we sort.
var DefaultOrderBy = order.NewBy(OrderByUserEmail, order.ASC)

// Set of fields that the results can be ordered by.
const (
	OrderByUserID        = "a"
	OrderByDashboardID   = "b"
	OrderByUserEmail     = "c"
	OrderByDashboardName = "d"
)
