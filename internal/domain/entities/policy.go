package entities

// Permission names a guarded action. Routes declare the permission they
// need; Allows decides per role.
type Permission string

const (
	PermProfileRead        Permission = "profile:read"
	PermProfessionalCreate Permission = "professional:create"
	PermProfessionalKYC    Permission = "professional:kyc"
	PermServiceCreate      Permission = "service:create"
	PermBookingCreate      Permission = "booking:create"
	PermBookingRead        Permission = "booking:read"
	PermBookingUpdate      Permission = "booking:update"
	PermMessageSend        Permission = "message:send"
	PermMessageRead        Permission = "message:read"
	PermRequirementCreate  Permission = "requirement:create"
	PermRequirementRead    Permission = "requirement:read"
)

var everyone = []UserRole{UserRoleBusiness, UserRoleProfessional, UserRoleAdmin}

var policy = map[Permission][]UserRole{
	PermProfileRead:        everyone,
	PermProfessionalCreate: {UserRoleProfessional, UserRoleAdmin},
	PermProfessionalKYC:    {UserRoleAdmin},
	PermServiceCreate:      {UserRoleProfessional, UserRoleAdmin},
	PermBookingCreate:      {UserRoleBusiness},
	PermBookingRead:        everyone,
	PermBookingUpdate:      everyone,
	PermMessageSend:        everyone,
	PermMessageRead:        everyone,
	PermRequirementCreate:  {UserRoleBusiness},
	PermRequirementRead:    {UserRoleBusiness, UserRoleAdmin},
}

// Allows reports whether role may perform perm. Unknown roles and
// unknown permissions are denied.
func Allows(role UserRole, perm Permission) bool {
	for _, r := range policy[perm] {
		if r == role {
			return true
		}
	}
	return false
}
