package authroles

import (
	domainsession "github.com/syed-arham-coder/Pak-Turk-sub001/internal/domain/session"
)

// StaticRoleMapper maps IdP groups to dashboard roles by simple string
// membership rules. Admin wins over manager; anything else is a member.
type StaticRoleMapper struct {
	AdminGroup   string
	ManagerGroup string
}

func (m StaticRoleMapper) Map(groups []string) domainsession.Role {
	for _, g := range groups {
		if m.AdminGroup != "" && g == m.AdminGroup {
			return domainsession.RoleAdmin
		}
	}
	for _, g := range groups {
		if m.ManagerGroup != "" && g == m.ManagerGroup {
			return domainsession.RoleManager
		}
	}
	return domainsession.RoleMember
}
