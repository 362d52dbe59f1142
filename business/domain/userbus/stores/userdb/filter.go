package userdb

import (
	"bytes"
	"strings"

	"github.com/jcpaschoal/biadmin/business/domain/userbus"
)

func applyFilter(filter userbus.QueryFilter, data map[string]any, buf *bytes.Buffer) {
	var wc []string

	if filter.ID != nil {
		data["user_id"] = *filter.ID
		wc = append(wc, "u.user_id = :user_id")
	}

	if filter.CompanyID != nil {
		data["company_id"] = *filter.CompanyID
		wc = append(wc, "u.company_id = :company_id")
	}

	if filter.DashboardID != nil {
		data["dashboard_id"] = *filter.DashboardID
		wc = append(wc, "u.user_id IN (SELECT g.user_id FROM user_dashboard AS g WHERE g.dashboard_id = :dashboard_id)")
	}

	if filter.Name != nil {
		data["name"] = "%" + *filter.Name + "%"
		wc = append(wc, "u.name ILIKE :name")
	}

	if filter.Email != nil {
		data["email"] = "%" + *filter.Email + "%"
		wc = append(wc, "u.email ILIKE :email")
	}

	if filter.Role != nil {
		data["role"] = filter.Role.String()
		wc = append(wc, "u.role = :role")
	}

	if filter.Active != nil {
		data["is_active"] = *filter.Active
		wc = append(wc, "u.is_active = :is_active")
	}

	if filter.StartCreatedAt != nil {
		data["start_created_at"] = filter.StartCreatedAt.UTC()
		wc = append(wc, "u.created_at >= :start_created_at")
	}

	if filter.EndCreatedAt != nil {
		data["end_created_at"] = filter.EndCreatedAt.UTC()
		wc = append(wc, "u.created_at <= :end_created_at")
	}

	if len(wc) > 0 {
		buf.WriteString(" WHERE ")
		buf.WriteString(strings.Join(wc, " AND "))
	}
}
