package userdb

import (
	"database/sql"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/jcpaschoal/biadmin/business/domain/userbus"
	"github.com/jcpaschoal/biadmin/business/types/name"
	"github.com/jcpaschoal/biadmin/business/types/role"
)

type userDB struct {
	ID           uuid.UUID      `db:"user_id"`
	CompanyID    uuid.NullUUID  `db:"company_id"`
	Name         sql.NullString `db:"name"`
	Email        string         `db:"email"`
	Role         string         `db:"role"`
	PasswordHash []byte         `db:"password_hash"`
	Active       bool           `db:"is_active"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func toDBUser(bus userbus.User) userDB {
	var companyID uuid.NullUUID
	if bus.CompanyID != nil {
		companyID = uuid.NullUUID{UUID: *bus.CompanyID, Valid: true}
	}

	return userDB{
		ID:           bus.ID,
		CompanyID:    companyID,
		Name:         name.ToSQLNullString(bus.Name),
		Email:        bus.Email.Address,
		Role:         bus.Role.String(),
		PasswordHash: bus.PasswordHash,
		Active:       bus.Active,
		CreatedAt:    bus.CreatedAt.UTC(),
		UpdatedAt:    bus.UpdatedAt.UTC(),
	}
}

func toBusUser(db userDB) (userbus.User, error) {
	addr := mail.Address{
		Address: db.Email,
	}

	usrRole, err := role.Parse(db.Role)
	if err != nil {
		return userbus.User{}, fmt.Errorf("parse role: %w", err)
	}

	nme, err := name.ParseNull(db.Name.String)
	if err != nil {
		return userbus.User{}, fmt.Errorf("parse name: %w", err)
	}

	var companyID *uuid.UUID
	if db.CompanyID.Valid {
		id := db.CompanyID.UUID
		companyID = &id
	}

	bus := userbus.User{
		ID:           db.ID,
		CompanyID:    companyID,
		Name:         nme,
		Email:        addr,
		Role:         usrRole,
		PasswordHash: db.PasswordHash,
		Active:       db.Active,
		CreatedAt:    db.CreatedAt.In(time.Local),
		UpdatedAt:    db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}

func toBusUsers(dbs []userDB) ([]userbus.User, error) {
	bus := make([]userbus.User, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusUser(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
