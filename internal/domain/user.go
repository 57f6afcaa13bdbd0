package domain

import (
	"time"
)

type Role string

const (
	RoleManager  Role = "经理"
	RoleEmployee Role = "员工"
)

type User struct {
	ID             int64     `json:"id"`
	OrganizationID int64     `json:"organizationID"`
	Username       string    `json:"username"`
	PasswordHash   string    `json:"-"`
	FullName       string    `json:"fullName"`
	Email          string    `json:"email"`
	JobTitle       string    `json:"jobTitle"`
	TeamID         *int64    `json:"teamID"`
	TeamName       string    `json:"teamName"`
	Role           Role      `json:"role"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	Version        int32     `json:"-"`
}
