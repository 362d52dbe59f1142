package dashboardapp

import "github.com/jcpaschoal/biadmin/business/domain/dashboardbus"

var orderByFields = map[string]string{
	"dashboard_id": dashboardbus.OrderByID,
	"name":         dashboardbus.OrderByName,
	"company_id":   dashboardbus.OrderByCompanyID,
	"is_active":    dashboardbus.OrderByActive,
	"created_at":   dashboardbus.OrderByCreatedAt,
}
