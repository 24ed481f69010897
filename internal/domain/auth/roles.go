package auth

import "strings"

// Role is an open set of role names. The constants below are the ones the
// wallet backends are known to issue; anything else is preserved as-is.
type Role string

const (
	RoleHolder   Role = "holder"
	RoleIssuer   Role = "issuer"
	RoleVerifier Role = "verifier"
	RoleAdmin    Role = "admin"
	RoleViewer   Role = "viewer"
)

// DefaultRole is assigned when a payload carries no usable role.
const DefaultRole = RoleHolder

// NormalizeRole trims and lower-cases a single role name.
func NormalizeRole(r string) Role {
	return Role(strings.ToLower(strings.TrimSpace(r)))
}

// NormalizeRoles merges the list-valued and singular role fields of a user payload.
// List entries come first, then the singular field; entries are trimmed and
// lower-cased, empties dropped and duplicates removed keeping first occurrence.
// An empty result yields []Role{DefaultRole}.
func NormalizeRoles(list []string, single string) []Role {
	raw := make([]string, 0, len(list)+1)
	raw = append(raw, list...)
	if single != "" {
		raw = append(raw, single)
	}

	roles := make([]Role, 0, len(raw))
	for _, r := range dedupe(raw) {
		roles = append(roles, Role(r))
	}
	if len(roles) == 0 {
		return []Role{DefaultRole}
	}
	return roles
}

// NormalizePermissions applies the role normalization rules to permission strings,
// without a fallback.
func NormalizePermissions(perms []string) []string {
	return dedupe(perms)
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, v := range in {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// NormalizeUser converts a backend payload into a User that satisfies the role invariants.
func NormalizeUser(raw RawUser) User {
	roles := NormalizeRoles(raw.Roles, raw.Role)
	return User{
		ID:          raw.ID,
		Username:    raw.Username,
		Email:       raw.Email,
		FullName:    raw.FullName,
		CreatedAt:   raw.CreatedAt,
		Role:        roles[0],
		Roles:       roles,
		Permissions: NormalizePermissions(raw.Permissions),
	}
}
