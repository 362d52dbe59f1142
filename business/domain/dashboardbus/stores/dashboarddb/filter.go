package dashboarddb

import (
	"bytes"
	"strings"

	"github.com/jcpaschoal/biadmin/business/domain/dashboardbus"
)

func applyFilter(filter dashboardbus.QueryFilter, data map[string]any, buf *bytes.Buffer) {
	var wc []string

	if filter.ID != nil {
		data["dashboard_id"] = *filter.ID
		wc = append(wc, "d.dashboard_id = :dashboard_id")
	}

	if filter.CompanyID != nil {
		data["company_id"] = *filter.CompanyID
		wc = append(wc, "d.company_id = :company_id")
	}

	if filter.UserID != nil {
		data["user_id"] = *filter.UserID
		wc = append(wc, "d.dashboard_id IN (SELECT g.dashboard_id FROM user_dashboard AS g WHERE g.user_id = :user_id)")
	}

	if filter.Name != nil {
		data["name"] = "%" + *filter.Name + "%"
		wc = append(wc, "d.name ILIKE :name")
	}

	if filter.Active != nil {
		data["is_active"] = *filter.Active
		wc = append(wc, "d.is_active = :is_active")
	}

	if len(wc) > 0 {
		buf.WriteString(" WHERE ")
		buf.WriteString(strings.Join(wc, " AND "))
	}
}
