package sqlite

import (
	"context"
	"time"

	"github.com/northloop/userd/internal/userd/domain"
)

type addressesRepo struct {
	db dbtx
}

func (r *addressesRepo) ListByUser(ctx context.Context, userID string) ([]domain.Address, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, apartment_number, floor, building, street_number,
			street, city, country, address_type, created_at, updated_at
		FROM addresses WHERE user_id = ? ORDER BY address_type ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Address
	for rows.Next() {
		var a domain.Address
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.ApartmentNumber, &a.Floor, &a.Building, &a.StreetNumber,
			&a.Street, &a.City, &a.Country, &a.AddressType, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *addressesRepo) Upsert(ctx context.Context, a domain.Address) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO addresses (id, user_id, apartment_number, floor, building,
			street_number, street, city, country, address_type, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, address_type) DO UPDATE SET
			apartment_number = excluded.apartment_number,
			floor = excluded.floor,
			building = excluded.building,
			street_number = excluded.street_number,
			street = excluded.street,
			city = excluded.city,
			country = excluded.country,
			updated_at = excluded.updated_at`,
		a.ID, a.UserID, a.ApartmentNumber, a.Floor, a.Building,
		a.StreetNumber, a.Street, a.City, a.Country, a.AddressType, now, now,
	)
	return err
}

func (r *addressesRepo) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM addresses WHERE user_id = ?`, userID)
	return err
}
