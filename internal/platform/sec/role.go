// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "slices"

// UserRole is the "rol" claim carried by tokens from the main Yomira API.
type UserRole string

const (
	RoleMember    UserRole = "member"
	RoleModerator UserRole = "moderator"

	// RoleAdmin is the only role allowed to import galleries.
	RoleAdmin UserRole = "admin"
)

// roleOrder lists the known roles from least to most privileged.
var roleOrder = []UserRole{RoleMember, RoleModerator, RoleAdmin}

// AtLeast reports whether r is target or ranks above it.
// Unknown roles rank below every known role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.rank() >= target.rank()
}

func (r UserRole) rank() int {
	return slices.Index(roleOrder, r) + 1
}
