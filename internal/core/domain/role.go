package domain

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// roleHierarchy is the static expansion of the declaration ADMIN > USER.
// Built once, never mutated; safe for concurrent reads.
var roleHierarchy = map[string][]string{
	RoleAdmin: {RoleAdmin, RoleUser},
	RoleUser:  {RoleUser},
}

// Implies returns the set of roles a granted role carries, including itself.
// Unknown roles imply nothing.
func Implies(role string) []string {
	return roleHierarchy[role]
}

// ValidRole reports whether role is one of the declared roles.
func ValidRole(role string) bool {
	_, ok := roleHierarchy[role]
	return ok
}

// Identity is the request-scoped authenticated principal derived from a
// validated token. It lives only inside a single request's context and is
// never persisted.
type Identity struct {
	Username string
	Roles    []string
}

// Grants reports whether the identity's granted roles, expanded through the
// role hierarchy, include the required role.
func (id Identity) Grants(required string) bool {
	for _, granted := range id.Roles {
		for _, implied := range Implies(granted) {
			if implied == required {
				return true
			}
		}
	}
	return false
}
