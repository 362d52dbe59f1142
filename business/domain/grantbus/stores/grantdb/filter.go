package grantdb

import (
	"bytes"
	"strings"

	"github.com/jcpaschoal/biadmin/business/domain/grantbus"
)

func applyFilter(filter grantbus.QueryFilter, data map[string]any, buf *bytes.Buffer) {
	var wc []string

	if filter.UserID != nil {
		data["user_id"] = *filter.UserID
		wc = append(wc, "g.user_id = :user_id")
	}

	if filter.DashboardID != nil {
		data["dashboard_id"] = *filter.DashboardID
		wc = append(wc, "g.dashboard_id = :dashboard_id")
	}

	if filter.CompanyID != nil {
		data["company_id"] = *filter.CompanyID
		wc = append(wc, "d.company_id = :company_id")
	}

	if len(wc) > 0 {
		buf.WriteString(" WHERE ")
		buf.WriteString(strings.Join(wc, " AND "))
	}
}
