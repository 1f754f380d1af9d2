package models

// RoleDetails is the expanded role object the accounts API nests in a user.
type RoleDetails struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

// User is the signed-in account as /auth/users/me/ returns it.
type User struct {
	ID          string       `json:"id"`
	Email       string       `json:"email"`
	FirstName   string       `json:"first_name"`
	LastName    string       `json:"last_name"`
	FullName    string       `json:"full_name"`
	Phone       *string      `json:"phone"`
	Role        *string      `json:"role"`
	RoleDetails *RoleDetails `json:"role_details"`
	IsActive    bool         `json:"is_active"`
}

// RoleName prefers the nested role name; the flat role field can hold either a name or an id.
func (u *User) RoleName() string {
	if u == nil {
		return ""
	}
	if u.RoleDetails != nil && u.RoleDetails.Name != "" {
		return u.RoleDetails.Name
	}
	if u.Role != nil {
		return *u.Role
	}
	return ""
}
