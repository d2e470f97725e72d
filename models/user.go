package models

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleStaff    UserRole = "staff"
	RoleReadOnly UserRole = "readonly"
)

// CanWrite — может ли роль изменять данные (CRUD, импорт).
func (r UserRole) CanWrite() bool {
	return r == RoleAdmin || r == RoleStaff
}
