package companyapp

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/jcpaschoal/biadmin/app/sdk/errs"
	"github.com/jcpaschoal/biadmin/business/domain/companybus"
)

type queryParams struct {
	Page    string
	Rows    string
	OrderBy string
	ID      string
	Name    string
	Active  string
}

func parseQueryParams(r *http.Request) queryParams {
	values := r.URL.Query()

	return queryParams{
		Page:    values.Get("page"),
		Rows:    values.Get("rows"),
		OrderBy: values.Get("orderBy"),
		ID:      values.Get("company_id"),
		Name:    values.Get("name"),
		Active:  values.Get("is_active"),
	}
}

func parseFilter(qp queryParams) (companybus.QueryFilter, error) {
	var fieldErrors errs.FieldErrors
	var filter companybus.QueryFilter

	if qp.ID != "" {
		id, err := uuid.Parse(qp.ID)
		switch err {
		case nil:
			filter.ID = &id
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
		return companybus.QueryFilter{}, fieldErrors.ToError()
	}

	return filter, nil
}
