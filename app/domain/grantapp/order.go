package grantapp

import (
	"github.com/jcpaschoal/biadmin/business/domain/dashboardbus"
	"github.com/jcpaschoal/biadmin/business/domain/grantbus"
	"github.com/jcpaschoal/biadmin/business/domain/userbus"
)

var orderByFields = map[string]string{
	"user_id":        grantbus.OrderByUserID,
	"dashboard_id":   grantbus.OrderByDashboardID,
	"user_email":     grantbus.OrderByUserEmail,
	"dashboard_name": grantbus.OrderByDashboardName,
}

var dashboardOrderByFields = map[string]string{
	"dashboard_id": dashboardbus.OrderByID,
	"name":         dashboardbus.OrderByName,
	"created_at":   dashboardbus.OrderByCreatedAt,
}

var userOrderByFields = map[string]string{
	"user_id":    userbus.OrderByID,
	"name":       userbus.OrderByName,
	"email":      userbus.OrderByEmail,
	"created_at": userbus.OrderByCreatedAt,
}
