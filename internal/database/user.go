package database

import (
	"errors"
	"strings"
)

// NewUser 构造普通账号。角色缺省为 candidate；禁止经由该路径创建 admin
// 或携带任何提升标志，防止出现"半提升"账号。
func NewUser(email, username, passwordHash string, role Role) (*User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	username = strings.TrimSpace(username)

	if email == "" {
		return nil, errors.New("email must be provided")
	}
	if username == "" {
		return nil, errors.New("username must be provided")
	}
	if role == "" {
		role = RoleCandidate
	}
	if !role.Valid() {
		return nil, errors.New("invalid role")
	}
	if role == RoleAdmin {
		return nil, errors.New("admin accounts must be created via NewAdminUser")
	}

	return &User{
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
		IsStaff:      false,
		IsSuperuser:  false,
		IsActive:     true,
	}, nil
}

// NewAdminUser 构造管理员账号。
// 不变式：role=admin ⇔ is_staff=true ⇔ is_superuser=true，三者必须同时成立。
func NewAdminUser(email, username, passwordHash string) (*User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	username = strings.TrimSpace(username)

	if email == "" {
		return nil, errors.New("email must be provided")
	}
	if username == "" {
		return nil, errors.New("username must be provided")
	}

	return &User{
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		Role:         RoleAdmin,
		IsStaff:      true,
		IsSuperuser:  true,
		IsActive:     true,
	}, nil
}

// ValidateRoleFlags 校验账号的角色与标志位组合是否一致，
// 用于拦截绕过构造函数直接拼装的对象。
func (u *User) ValidateRoleFlags() error {
	elevated := u.IsStaff || u.IsSuperuser
	if u.Role == RoleAdmin {
		if !u.IsStaff || !u.IsSuperuser {
			return errors.New("admin user must have is_staff and is_superuser set")
		}
		return nil
	}
	if elevated {
		return errors.New("elevated flags require role=admin")
	}
	return nil
}
