package entity

import "github.com/questx-lab/taskreward/pkg/enum"

type GlobalRole string

var (
	RoleUser  = enum.New(GlobalRole("user"))
	RoleQA    = enum.New(GlobalRole("qa"))
	RoleAdmin = enum.New(GlobalRole("admin"))
)

var (
	ReviewRoles = []GlobalRole{RoleQA, RoleAdmin}
	AdminRoles  = []GlobalRole{RoleAdmin}
)

type UserStatus string

var (
	UserActive   = enum.New(UserStatus("active"))
	UserInactive = enum.New(UserStatus("inactive"))
)

// User is owned by the identity subsystem. Points is the spendable balance and
// TotalEarned only ever grows.
type User struct {
	Base

	Name        string
	Role        GlobalRole `gorm:"default:user"`
	Status      UserStatus `gorm:"default:active"`
	Points      int64
	TotalEarned int64
}
