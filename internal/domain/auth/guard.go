package auth

// RoleSet answers role membership questions for one normalized set of roles.
// Build a new RoleSet whenever the underlying roles change.
type RoleSet struct {
	roles map[Role]struct{}
}

// NewRoleSet builds a RoleSet from already-normalized roles.
func NewRoleSet(roles []Role) RoleSet {
	m := make(map[Role]struct{}, len(roles))
	for _, r := range roles {
		m[r] = struct{}{}
	}
	return RoleSet{roles: m}
}

// HasRole normalizes role and reports exact membership. An empty role is never held.
func (s RoleSet) HasRole(role Role) bool {
	r := NormalizeRole(string(role))
	if r == "" {
		return false
	}
	_, ok := s.roles[r]
	return ok
}

// HasAnyRole reports whether at least one required role is held. No requirements always pass.
func (s RoleSet) HasAnyRole(required ...Role) bool {
	if len(required) == 0 {
		return true
	}
	for _, r := range required {
		if s.HasRole(r) {
			return true
		}
	}
	return false
}

// HasEveryRole reports whether every required role is held. No requirements always pass.
func (s RoleSet) HasEveryRole(required ...Role) bool {
	for _, r := range required {
		if !s.HasRole(r) {
			return false
		}
	}
	return true
}

// CheckOptions tunes CheckRoles.
type CheckOptions struct {
	RequireAll bool
}

// CheckRoles applies any-of semantics, or all-of when opts.RequireAll is set.
func (s RoleSet) CheckRoles(required []Role, opts CheckOptions) bool {
	if opts.RequireAll {
		return s.HasEveryRole(required...)
	}
	return s.HasAnyRole(required...)
}

// GuardOutcome is the result of evaluating a protected route.
type GuardOutcome int

const (
	// OutcomeLoading means the profile is not yet known; no decision can be made.
	OutcomeLoading GuardOutcome = iota
	// OutcomeDenied means the profile is known and lacks the required roles.
	OutcomeDenied
	// OutcomeAllowed means the profile satisfies the requirement.
	OutcomeAllowed
)

func (o GuardOutcome) String() string {
	switch o {
	case OutcomeLoading:
		return "loading"
	case OutcomeDenied:
		return "denied"
	case OutcomeAllowed:
		return "allowed"
	default:
		return "unknown"
	}
}

// GuardState is what a route guard knows at the time of the check.
type GuardState struct {
	Loading bool
	User    *User
}

// Evaluate checks loading first, then applies the role requirement.
// A missing user after loading has completed is denied.
func Evaluate(state GuardState, required []Role, opts CheckOptions) GuardOutcome {
	if state.Loading {
		return OutcomeLoading
	}
	if state.User == nil {
		return OutcomeDenied
	}
	if state.User.RoleSet().CheckRoles(required, opts) {
		return OutcomeAllowed
	}
	return OutcomeDenied
}
