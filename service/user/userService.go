package usersvc

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Wh1teW1nter/java-shareit/apperr"
	"github.com/Wh1teW1nter/java-shareit/model"
)

type Repo interface {
	Create(ctx context.Context, u *model.User) error
	Update(ctx context.Context, u *model.User) error
	ByID(ctx context.Context, id int64) (*model.User, error)
	All(ctx context.Context) ([]model.User, error)
	EmailTaken(ctx context.Context, email string, excludeID int64) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// Patch carries a partial update; nil fields are left untouched. A field
// equal to the stored value does not count as a change.
type Patch struct {
	Name  *string
	Email *string
}

type Service interface {
	Create(ctx context.Context, name, email string) (*model.User, error)
	Update(ctx context.Context, patch Patch, id int64) (*model.User, error)
	ByID(ctx context.Context, id int64) (*model.User, error)
	All(ctx context.Context) ([]model.User, error)
	Delete(ctx context.Context, id int64) error
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, name, email string) (*model.User, error) {
	if email == "" {
		return nil, apperr.Validation("email must not be empty")
	}
	u := &model.User{Name: name, Email: email}
	if err := s.r.Create(ctx, u); err != nil {
		if derr := mapDuplicateErr(err); derr != nil {
			return nil, derr
		}
		return nil, err
	}
	return u, nil
}

func (s *service) Update(ctx context.Context, patch Patch, id int64) (*model.User, error) {
	u, err := s.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changed := false
	if patch.Email != nil && *patch.Email != u.Email {
		taken, err := s.r.EmailTaken(ctx, *patch.Email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperr.Conflict("unable to update user with given email")
		}
		u.Email = *patch.Email
		changed = true
	}
	if patch.Name != nil && *patch.Name != u.Name {
		u.Name = *patch.Name
		changed = true
	}
	if !changed {
		return nil, apperr.Validation("unable to update user: no field changed")
	}

	if err := s.r.Update(ctx, u); err != nil {
		if derr := mapDuplicateErr(err); derr != nil {
			return nil, derr
		}
		return nil, err
	}
	return u, nil
}

func (s *service) ByID(ctx context.Context, id int64) (*model.User, error) {
	u, err := s.r.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("user was not found")
		}
		return nil, err
	}
	return u, nil
}

func (s *service) All(ctx context.Context) ([]model.User, error) {
	return s.r.All(ctx)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	ok, err := s.r.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("user to delete was not found")
	}
	return nil
}

// mapDuplicateErr turns a postgres unique violation on the email index
// into a Conflict; other errors pass through untouched.
func mapDuplicateErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return apperr.Conflict("email is already registered")
	}
	return nil
}
