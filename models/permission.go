package models

// Permission is a named capability checked by the route guard independently
// of role.
type Permission struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:128;not null;uniqueIndex" json:"name"`
}

// UserPermission is the assignment join row; both sides cascade.
type UserPermission struct {
	UserID       uint `gorm:"primaryKey;column:user_id"`
	PermissionID uint `gorm:"primaryKey;column:permission_id"`

	User       User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Permission Permission `gorm:"foreignKey:PermissionID;constraint:OnDelete:CASCADE;"`
}

func (UserPermission) TableName() string { return "users_to_permissions" }

// Admin capability names. Seeded once at startup; the guard matches route
// requirements against these strings.
const (
	PermSuperAdmin                   = "super_admin"
	PermDashboardAccess              = "dashboard_access"
	PermFeeAndDuesManagement         = "fee_and_dues_management"
	PermPaymentManagement            = "payment_management"
	PermFinancialAidManagement       = "financial_aid_management"
	PermTransactionManagement        = "transaction_management"
	PermUserManagement               = "user_management"
	PermProgrammeManagement          = "programme_management"
	PermStudentManagement            = "student_management"
	PermSecurityAndAccessControl     = "security_and_access_control"
	PermFinancialAidGradesManagement = "financial_aid_grades_management"
	PermBillDiscountsManagement      = "bill_discounts_management"
)

// AllPermissions is the fixed seed list.
var AllPermissions = []string{
	PermSuperAdmin,
	PermDashboardAccess,
	PermFeeAndDuesManagement,
	PermPaymentManagement,
	PermFinancialAidManagement,
	PermTransactionManagement,
	PermUserManagement,
	PermProgrammeManagement,
	PermStudentManagement,
	PermSecurityAndAccessControl,
	PermFinancialAidGradesManagement,
	PermBillDiscountsManagement,
}
