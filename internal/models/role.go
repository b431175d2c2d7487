package models

import "strings"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRoles maps requested role names onto the two known roles.
// "admin" (any case) grants ADMIN, everything else USER; an empty request
// yields {USER}. Duplicates are dropped, order of first appearance kept.
func ParseRoles(requested []string) []string {
	if len(requested) == 0 {
		return []string{string(RoleUser)}
	}
	roles := make([]string, 0, len(requested))
	for _, r := range requested {
		role := RoleUser
		if strings.EqualFold(strings.TrimSpace(r), "admin") {
			role = RoleAdmin
		}
		roles = appendUnique(roles, string(role))
	}
	return roles
}

func appendUnique(set []string, v string) []string {
	for _, s := range set {
		if s == v {
			return set
		}
	}
	return append(set, v)
}
