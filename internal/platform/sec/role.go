// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole is a role granted through the backend's app metadata.
type UserRole string

const (
	// RoleAdmin marks accounts created through the privileged admin endpoint.
	RoleAdmin UserRole = "admin"
)

// ProviderEmail is the app-metadata provider recorded for password accounts.
const ProviderEmail = "email"
