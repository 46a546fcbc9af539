package domain

// Actor is the authenticated caller of an operation, resolved from a session.
type Actor struct {
	ID   string
	Role Role
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// Decision is the outcome of an authorization check.
type Decision bool

const (
	Forbidden Decision = false
	Allowed   Decision = true
)

func (d Decision) String() string {
	if d {
		return "allowed"
	}
	return "forbidden"
}

// CanUpdateProfile allows admins on any account and everyone on their own.
func CanUpdateProfile(actor Actor, targetID string) Decision {
	return Decision(actor.IsAdmin() || (actor.ID != "" && actor.ID == targetID))
}

// CanChangeRole is admin only. Admins may change their own role, including
// demoting themselves.
func CanChangeRole(actor Actor, _ string) Decision {
	return Decision(actor.IsAdmin())
}

func CanDeleteAccount(actor Actor, _ string) Decision {
	return Decision(actor.IsAdmin())
}

func CanCreateAccount(actor Actor) Decision {
	return Decision(actor.IsAdmin())
}

func CanListAccounts(actor Actor) Decision {
	return Decision(actor.IsAdmin())
}

// CanReadAccount gates the by-id lookup. Reading one's own profile goes
// through the current-profile path, which is not gated.
func CanReadAccount(actor Actor, _ string) Decision {
	return Decision(actor.IsAdmin())
}
