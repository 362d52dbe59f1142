package companyapp

import "github.com/jcpaschoal/biadmin/business/domain/companybus"

var orderByFields = map[string]string{
	"company_id": companybus.OrderByID,
	"name":       companybus.OrderByName,
	"is_active":  companybus.OrderByActive,
	"created_at": companybus.OrderByCreatedAt,
}
