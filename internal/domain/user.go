package domain

// User roles. Dealers are licensed trade accounts buying at cost.
const (
	RoleCustomer = "customer"
	RoleDealer   = "dealer"
	RoleAdmin    = "admin"
)

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type contextKey string

// UserContextKey stores the authenticated user on the request context.
const UserContextKey contextKey = "user"

// Audience is the pricing perspective applied to a request.
type Audience int

const (
	AudienceRetail Audience = iota
	AudienceDealer
)

// AudienceForRole maps an account role to its pricing audience. Anonymous
// and unrecognized roles see retail pricing.
func AudienceForRole(role string) Audience {
	if role == RoleDealer {
		return AudienceDealer
	}
	return AudienceRetail
}
