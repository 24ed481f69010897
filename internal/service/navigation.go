package service

import (
	domainauth "github.com/cryptlocker/cryptlocker-ui-api/internal/domain/auth"
)

// Role allow-lists shared by the sidebar and the route guards.
var (
	RolesDashboardPage = roles(
		domainauth.RoleHolder, domainauth.RoleAdmin, domainauth.RoleViewer, domainauth.RoleIssuer, domainauth.RoleVerifier,
	)
	RolesDashboard     = roles(domainauth.RoleHolder, domainauth.RoleAdmin, domainauth.RoleIssuer, domainauth.RoleVerifier)
	RolesCredentials   = roles(domainauth.RoleHolder, domainauth.RoleAdmin)
	RolesIssuer        = roles(domainauth.RoleIssuer, domainauth.RoleAdmin)
	RolesVerifier      = roles(domainauth.RoleVerifier, domainauth.RoleAdmin)
	RolesConnections   = roles(domainauth.RoleHolder, domainauth.RoleAdmin, domainauth.RoleIssuer)
	RolesProofs        = roles(domainauth.RoleHolder, domainauth.RoleAdmin, domainauth.RoleVerifier)
	RolesNotifications = roles(domainauth.RoleHolder, domainauth.RoleAdmin, domainauth.RoleIssuer, domainauth.RoleVerifier)
	RolesSettings      = roles(domainauth.RoleAdmin, domainauth.RoleHolder)
	RolesEveryone      = roles(
		domainauth.RoleHolder, domainauth.RoleAdmin, domainauth.RoleIssuer, domainauth.RoleVerifier, domainauth.RoleViewer,
	)
)

func roles(r ...domainauth.Role) []domainauth.Role { return r }

// NavItem is one sidebar entry.
type NavItem struct {
	Href  string            `json:"href"`
	Label string            `json:"label"`
	Group string            `json:"group"`
	Roles []domainauth.Role `json:"roles"`
}

var navigation = []NavItem{
	{Href: "/dashboard", Label: "Dashboard", Group: "main", Roles: RolesDashboardPage},
	{Href: "/dashboard/credentials", Label: "Credentials", Group: "main", Roles: RolesCredentials},
	{Href: "/dashboard/issuer", Label: "Issue Credentials", Group: "main", Roles: RolesIssuer},
	{Href: "/dashboard/verifier", Label: "Verify Proofs", Group: "main", Roles: RolesVerifier},
	{Href: "/dashboard/connections", Label: "Connections", Group: "main", Roles: RolesConnections},
	{Href: "/dashboard/proofs", Label: "Proof Requests", Group: "main", Roles: RolesProofs},
	{Href: "/dashboard/notifications", Label: "Notifications", Group: "main", Roles: RolesNotifications},
	{Href: "/dashboard/settings", Label: "Settings", Group: "secondary", Roles: RolesSettings},
	{Href: "/help", Label: "Help & Support", Group: "secondary", Roles: RolesEveryone},
}

// Navigation returns the sidebar entries visible to a holder of rs.
func Navigation(rs domainauth.RoleSet) []NavItem {
	out := make([]NavItem, 0, len(navigation))
	for _, item := range navigation {
		if rs.HasAnyRole(item.Roles...) {
			out = append(out, item)
		}
	}
	return out
}
