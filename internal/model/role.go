package model

// Role represents a staff role. The system has exactly two: admins manage
// the catalog and staff, cashiers run the POS screen.
type Role struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Code        string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Name        string `gorm:"type:varchar(100)" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

const (
	RoleAdmin   = "ADMIN"
	RoleCashier = "CASHIER"
)

var DefaultRoles = []Role{
	{
		Code:        RoleAdmin,
		Name:        "Administrator",
		Description: "Catalog, user, and receipt management",
	},
	{
		Code:        RoleCashier,
		Name:        "Cashier",
		Description: "POS screen and sale finalization",
	},
}
