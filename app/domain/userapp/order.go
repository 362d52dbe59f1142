package userapp

import "github.com/jcpaschoal/biadmin/business/domain/userbus"

var orderByFields = map[string]string{
	"user_id":    userbus.OrderByID,
	"name":       userbus.OrderByName,
	"email":      userbus.OrderByEmail,
	"role":       userbus.OrderByRole,
	"is_active":  userbus.OrderByActive,
	"created_at": userbus.OrderByCreatedAt,
}
