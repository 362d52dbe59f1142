package companydb

import (
	"bytes"
	"strings"

	"github.com/jcpaschoal/biadmin/business/domain/companybus"
)

func applyFilter(filter companybus.QueryFilter, data map[string]any, buf *bytes.Buffer) {
	var wc []string

	if filter.ID != nil {
		data["company_id"] = *filter.ID
		wc = append(wc, "company_id = :company_id")
	}

	if filter.Name != nil {
		data["name"] = "%" + *filter.Name + "%"
		wc = append(wc, "name ILIKE :name")
	}

	if filter.Active != nil {
		data["is_active"] = *filter.Active
		wc = append(wc, "is_active = :is_active")
	}

	if len(wc) > 0 {
		buf.WriteString(" WHERE ")
		buf.WriteString(strings.Join(wc, " AND "))
	}
}
