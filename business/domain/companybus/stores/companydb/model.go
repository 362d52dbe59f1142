package companydb

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/biadmin/business/domain/companybus"
	"github.com/jcpaschoal/biadmin/business/types/name"
)

type companyDB struct {
	ID        uuid.UUID      `db:"company_id"`
	Name      string         `db:"name"`
	Industry  sql.NullString `db:"industry"`
	Active    bool           `db:"is_active"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func toDBCompany(bus companybus.Company) companyDB {
	var industry sql.NullString
	if bus.Industry != nil {
		industry = sql.NullString{String: *bus.Industry, Valid: true}
	}

	return companyDB{
		ID:        bus.ID,
		Name:      bus.Name.String(),
		Industry:  industry,
		Active:    bus.Active,
		CreatedAt: bus.CreatedAt.UTC(),
		UpdatedAt: bus.UpdatedAt.UTC(),
	}
}

func toBusCompany(db companyDB) (companybus.Company, error) {
	nme, err := name.Parse(db.Name)
	if err != nil {
		return companybus.Company{}, fmt.Errorf("parse name: %w", err)
	}

	var industry *string
	if db.Industry.Valid {
		industry = &db.Industry.String
	}

	bus := companybus.Company{
		ID:        db.ID,
		Name:      nme,
		Industry:  industry,
		Active:    db.Active,
		CreatedAt: db.CreatedAt.In(time.Local),
		UpdatedAt: db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}

func toBusCompanies(dbs []companyDB) ([]companybus.Company, error) {
	bus := make([]companybus.Company, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusCompany(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
