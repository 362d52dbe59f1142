package grantapp

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/jcpaschoal/biadmin/app/sdk/errs"
	"github.com/jcpaschoal/biadmin/business/domain/grantbus"
)

type queryParams struct {
	Page        string
	Rows        string
	OrderBy     string
	UserID      string
	DashboardID string
	CompanyID   string
}

func parseQueryParams(r *http.Request) queryParams {
	values := r.URL.Query()

	return queryParams{
		Page:        values.Get("page"),
		Rows:        values.Get("rows"),
		OrderBy:     values.Get("orderBy"),
		UserID:      values.Get("user_id"),
		DashboardID: values.Get("dashboard_id"),
		CompanyID:   values.Get("company_id"),
	}
}

func parseFilter(qp queryParams) (grantbus.QueryFilter, error) {
	var fieldErrors errs.FieldErrors
	var filter grantbus.QueryFilter

	parse := func(field string, v string) *uuid.UUID {
		if v == "" {
			return nil
		}

		id, err := uuid.Parse(v)
		if err != nil {
			fieldErrors.Add(field, err)
			return nil
		}

		return &id
	}

	filter.UserID = parse("user_id", qp.UserID)
	filter.DashboardID = parse("dashboard_id", qp.DashboardID)
	filter.CompanyID = parse("company_id", qp.CompanyID)

	if fieldErrors != nil {
		return grantbus.QueryFilter{}, fieldErrors.ToError()
	}

	return filter, nil
}
