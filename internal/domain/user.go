package domain

// Roles assigned to users. New accounts default to RoleCustomer; promotion
// happens only through the admin API.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User mirrors the profile kept for an externally authenticated identity.
// The ID is the opaque subject issued by the identity provider.
type User struct {
	ID        string `db:"id" json:"id"`
	Email     string `db:"email" json:"email"`
	Name      string `db:"name" json:"name"`
	Role      string `db:"role" json:"role"`
	CreatedAt string `db:"created_at" json:"createdAt"`
	UpdatedAt string `db:"updated_at" json:"updatedAt,omitempty"`
}
