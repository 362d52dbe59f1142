package grantdb

import (
	"database/sql"
	"fmt"
	"net/mail"

	"github.com/google/uuid"
	"github.com/jcpaschoal/biadmin/business/domain/grantbus"
	"github.com/jcpaschoal/biadmin/business/types/name"
)

type grantDB struct {
	UserID      uuid.UUID `db:"user_id"`
	DashboardID uuid.UUID `db:"dashboard_id"`
}

func toDBGrant(bus grantbus.Grant) grantDB {
	return grantDB{
		UserID:      bus.UserID,
		DashboardID: bus.DashboardID,
	}
}

func toBusGrant(db grantDB) grantbus.Grant {
	return grantbus.Grant{
		UserID:      db.UserID,
		DashboardID: db.DashboardID,
	}
}

type grantDetailDB struct {
	UserID        uuid.UUID      `db:"user_id"`
	DashboardID   uuid.UUID      `db:"dashboard_id"`
	UserName      sql.NullString `db:"user_name"`
	UserEmail     string         `db:"user_email"`
	DashboardName string         `db:"dashboard_name"`
}

func toBusGrantDetail(db grantDetailDB) (grantbus.GrantDetail, error) {
	userName, err := name.ParseNull(db.UserName.String)
	if err != nil {
		return grantbus.GrantDetail{}, fmt.Errorf("parse user name: %w", err)
	}

	addr := mail.Address{
		Address: db.UserEmail,
	}

	dashName, err := name.Parse(db.DashboardName)
	if err != nil {
		return grantbus.GrantDetail{}, fmt.Errorf("parse dashboard name: %w", err)
	}

	gd := grantbus.GrantDetail{
		Grant: grantbus.Grant{
			UserID:      db.UserID,
			DashboardID: db.DashboardID,
		},
		User: grantbus.UserSummary{
			ID:    db.UserID,
			Name:  userName,
			Email: addr,
		},
		Dashboard: grantbus.DashboardSummary{
			ID:   db.DashboardID,
			Name: dashName,
		},
	}

	return gd, nil
}

func toBusGrantDetails(dbs []grantDetailDB) ([]grantbus.GrantDetail, error) {
	bus := make([]grantbus.GrantDetail, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusGrantDetail(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
