package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/northloop/userd/internal/userd/domain"
	"github.com/northloop/userd/internal/userd/store"
	"github.com/northloop/userd/pkg/apierr"
	"github.com/northloop/userd/pkg/cryptox"
	"github.com/northloop/userd/pkg/idx"
)

var (
	ErrUserNotFound      = apierr.New(apierr.KindNotFound, "user not found")
	ErrUserExists        = apierr.New(apierr.KindAlreadyExists, "username, email or phone number already in use")
	ErrPasswordsMismatch = apierr.New(apierr.KindInvalidArgument, "password and confirmation do not match")
)

// sortExpr matches "column:direction" sort parameters, e.g. "fullName:asc".
var sortExpr = regexp.MustCompile(`^(\w+):(asc|desc)$`)

// sortColumns whitelists the sortable fields and maps the API names onto
// the underlying columns. Anything outside this map is rejected.
var sortColumns = map[string]string{
	"id":        "id",
	"fullName":  "full_name",
	"email":     "email",
	"username":  "username",
	"status":    "status",
	"type":      "type",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// AddressInput is one address attached to a user. AddressType keys the
// upsert: a second submit with the same type replaces the first.
type AddressInput struct {
	ApartmentNumber string
	Floor           string
	Building        string
	StreetNumber    string
	Street          string
	City            string
	Country         string
	AddressType     int
}

// CreateUserInput carries the fields accepted on registration and on the
// admin create endpoint.
type CreateUserInput struct {
	FullName    string
	Gender      string
	DateOfBirth time.Time
	Email       string
	PhoneNumber string
	Username    string
	Password    string
	Type        string
	Addresses   []AddressInput
}

// UpdateUserInput carries the mutable profile fields. Credentials and
// status change through their own operations.
type UpdateUserInput struct {
	FullName    string
	Gender      string
	DateOfBirth time.Time
	Email       string
	PhoneNumber string
	Username    string
	Addresses   []AddressInput
}

// UserDetail is a user with its addresses attached.
type UserDetail struct {
	User      domain.User
	Addresses []domain.Address
}

// UserPage is one page of a user listing.
type UserPage struct {
	Users      []domain.User
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// UserService owns user lifecycle and profile management.
type UserService struct {
	Store store.Store
}

// Create registers a new user. The password is hashed before anything is
// written and the user row plus addresses commit in one transaction.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (domain.User, error) {
	if taken, err := s.identifierTaken(ctx, in.Username, in.Email, in.PhoneNumber); err != nil {
		return domain.User{}, err
	} else if taken {
		return domain.User{}, ErrUserExists
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	u := domain.User{
		ID:           idx.New().String(),
		FullName:     in.FullName,
		Gender:       domain.Gender(in.Gender),
		DateOfBirth:  in.DateOfBirth,
		Email:        in.Email,
		PhoneNumber:  in.PhoneNumber,
		Username:     in.Username,
		PasswordHash: hash,
		Status:       domain.StatusNone,
		Type:         userType(in.Type),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().Create(ctx, u); err != nil {
			return err
		}
		for _, a := range in.Addresses {
			if err := tx.Addresses().Upsert(ctx, addressFromInput(u.ID, a)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUserExists
		}
		return domain.User{}, err
	}
	return u, nil
}

// Update replaces the profile fields of an existing user and upserts the
// submitted addresses.
func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) error {
	u, err := s.Store.Users().GetByID(ctx, id)
	if err != nil {
		return mapUserErr(err)
	}

	if in.Username != u.Username || in.Email != u.Email || in.PhoneNumber != u.PhoneNumber {
		if taken, err := s.identifierChanged(ctx, u, in.Username, in.Email, in.PhoneNumber); err != nil {
			return err
		} else if taken {
			return ErrUserExists
		}
	}

	u.FullName = in.FullName
	u.Gender = domain.Gender(in.Gender)
	u.DateOfBirth = in.DateOfBirth
	u.Email = in.Email
	u.PhoneNumber = in.PhoneNumber
	u.Username = in.Username
	u.UpdatedAt = time.Now().UTC()

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().Update(ctx, u); err != nil {
			return err
		}
		for _, a := range in.Addresses {
			if err := tx.Addresses().Upsert(ctx, addressFromInput(u.ID, a)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return ErrUserExists
		}
		return mapUserErr(err)
	}
	return nil
}

// ChangeStatus flips a user's account status.
func (s *UserService) ChangeStatus(ctx context.Context, id string, status string) error {
	st := domain.UserStatus(status)
	if !domain.ValidStatus(st) {
		return apierr.New(apierr.KindInvalidArgument, fmt.Sprintf("unknown status %q", status))
	}
	return mapUserErr(s.Store.Users().UpdateStatus(ctx, id, st))
}

// ChangePassword sets a new password after checking the confirmation.
func (s *UserService) ChangePassword(ctx context.Context, id, password, confirm string) error {
	if password != confirm {
		return ErrPasswordsMismatch
	}
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return mapUserErr(s.Store.Users().UpdatePasswordHash(ctx, id, hash))
}

// Delete removes a user and, through the schema's cascade, its addresses.
func (s *UserService) Delete(ctx context.Context, id string) error {
	return mapUserErr(s.Store.Users().Delete(ctx, id))
}

// GetDetail loads a user together with its addresses.
func (s *UserService) GetDetail(ctx context.Context, id string) (UserDetail, error) {
	u, err := s.Store.Users().GetByID(ctx, id)
	if err != nil {
		return UserDetail{}, mapUserErr(err)
	}
	addrs, err := s.Store.Addresses().ListByUser(ctx, id)
	if err != nil {
		return UserDetail{}, err
	}
	return UserDetail{User: u, Addresses: addrs}, nil
}

// List returns one page of users. sorts holds zero or more
// "column:direction" expressions applied in order.
func (s *UserService) List(ctx context.Context, page, pageSize int, sorts []string) (UserPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	orders, err := parseSorts(sorts)
	if err != nil {
		return UserPage{}, err
	}

	users, total, err := s.Store.Users().List(ctx, store.ListParams{
		Page:     page,
		PageSize: pageSize,
		OrderBy:  orders,
	})
	if err != nil {
		return UserPage{}, err
	}

	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}
	return UserPage{
		Users:      users,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func parseSorts(sorts []string) ([]store.Order, error) {
	var orders []store.Order
	for _, raw := range sorts {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		m := sortExpr.FindStringSubmatch(raw)
		if m == nil {
			return nil, apierr.New(apierr.KindInvalidArgument, fmt.Sprintf("invalid sort %q, want field:asc or field:desc", raw))
		}
		col, ok := sortColumns[m[1]]
		if !ok {
			return nil, apierr.New(apierr.KindInvalidArgument, fmt.Sprintf("cannot sort by %q", m[1]))
		}
		orders = append(orders, store.Order{Column: col, Descending: m[2] == "desc"})
	}
	return orders, nil
}

func (s *UserService) identifierTaken(ctx context.Context, username, email, phone string) (bool, error) {
	if exists, err := s.Store.Users().ExistsByUsername(ctx, username); err != nil || exists {
		return exists, err
	}
	if exists, err := s.Store.Users().ExistsByEmail(ctx, email); err != nil || exists {
		return exists, err
	}
	return s.Store.Users().ExistsByPhone(ctx, phone)
}

func (s *UserService) identifierChanged(ctx context.Context, current domain.User, username, email, phone string) (bool, error) {
	if username != current.Username {
		if exists, err := s.Store.Users().ExistsByUsername(ctx, username); err != nil || exists {
			return exists, err
		}
	}
	if email != current.Email {
		if exists, err := s.Store.Users().ExistsByEmail(ctx, email); err != nil || exists {
			return exists, err
		}
	}
	if phone != current.PhoneNumber {
		return s.Store.Users().ExistsByPhone(ctx, phone)
	}
	return false, nil
}

func addressFromInput(userID string, a AddressInput) domain.Address {
	return domain.Address{
		ID:              idx.New().String(),
		UserID:          userID,
		ApartmentNumber: a.ApartmentNumber,
		Floor:           a.Floor,
		Building:        a.Building,
		StreetNumber:    a.StreetNumber,
		Street:          a.Street,
		City:            a.City,
		Country:         a.Country,
		AddressType:     a.AddressType,
	}
}

func userType(t string) domain.UserType {
	switch domain.UserType(t) {
	case domain.TypeAdmin, domain.TypeMember, domain.TypeUser:
		return domain.UserType(t)
	default:
		return domain.TypeUser
	}
}

func mapUserErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}
