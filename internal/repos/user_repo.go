package repos

import (
	"github.com/jmoiron/sqlx"

	"github.com/Iamtheusername112/eCommerce/internal/domain"
)

type UserRepo struct{ db *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

// UpsertFromClaims creates the profile row on first authenticated request and
// refreshes email/name afterwards. Role is only set on insert; promotions go
// through UpdateRole so a stale token cannot demote an admin.
func (r *UserRepo) UpsertFromClaims(id, email, name, role string) error {
	if role != domain.RoleAdmin {
		role = domain.RoleCustomer
	}
	_, err := r.db.Exec(`
	  INSERT INTO users(id, email, name, role)
	  VALUES(?,?,?,?)
	  ON CONFLICT(id) DO UPDATE
	  SET email = excluded.email, name = excluded.name, updated_at = CURRENT_TIMESTAMP
	`, id, email, name, role)
	return err
}

func (r *UserRepo) ByID(id string) (*domain.User, error) {
	var u domain.User
	err := r.db.Get(&u, `
	  SELECT id, email, name, role, created_at, COALESCE(updated_at,'') AS updated_at
	  FROM users WHERE id = ?
	`, id)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) UpdateRole(id, role string) error {
	_, err := r.db.Exec(`UPDATE users SET role = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, role, id)
	return err
}

func (r *UserRepo) List(limit int) ([]domain.User, error) {
	if limit <= 0 {
		limit = 100
	}
	out := []domain.User{}
	err := r.db.Select(&out, `
	  SELECT id, email, name, role, created_at, COALESCE(updated_at,'') AS updated_at
	  FROM users ORDER BY datetime(created_at) DESC LIMIT ?
	`, limit)
	return out, err
}
