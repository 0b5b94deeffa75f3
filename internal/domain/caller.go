package domain

type Role string

const (
	RoleCustomer Role = "customer"
	RoleOperator Role = "operator"
)

// Caller is the authenticated identity attached to a request. Session
// issuance lives outside this service; we only consume the resolved id and
// role.
type Caller struct {
	ID   string
	Role Role
}

func (c Caller) IsOperator() bool {
	return c.Role == RoleOperator
}
