package dashboardapp

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/jcpaschoal/biadmin/app/sdk/errs"
	"github.com/jcpaschoal/biadmin/business/domain/dashboardbus"
)

type queryParams struct {
	Page      string
	Rows      string
	OrderBy   string
	ID        string
	CompanyID string
	Name      string
	Active    string
}

func parseQueryParams(r *http.Request) queryParams {
	values := r.URL.Query()

	return queryParams{
		Page:      values.Get("page"),
		Rows:      values.Get("rows"),
		OrderBy:   values.Get("orderBy"),
		ID:        values.Get("dashboard_id"),
		CompanyID: values.Get("company_id"),
		Name:      values.Get("name"),
		Active:    values.Get("is_active"),
	}
}

func parseFilter(qp queryParams) (dashboardbus.QueryFilter, error) {
	var fieldErrors errs.FieldErrors
	var filter dashboardbus.QueryFilter

	if qp.ID != "" {
		id, err := uuid.Parse(qp.ID)
		switch err {
		case nil:
			filter.ID = &id
		default:
			fieldErrors.Add("dashboard_id", err)
		}
	}

	if qp.CompanyID != "" {
		id, err := uuid.Parse(qp.CompanyID)
		switch err {
		case nil:
			filter.CompanyID = &id
		default:
			fieldErrors.Add("company_id", err)
		}
	}

	if qp.Name != "" {
		filter.Name = &qp.Name
	}

	if qp.Active != "" {
		active, err := strconv.ParseBool(qp.Active)
		switch err {
		case nil:
			filter.Active = &active
		default:
			fieldErrors.Add("is_active", err)
		}
	}

	if fieldErrors != nil {
		return dashboardbus.QueryFilter{}, fieldErrors.ToError()
	}

	return filter, nil
}
