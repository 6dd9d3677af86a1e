package auth

// Operation enumerates every endpoint-level action the policy rules on.
type Operation string

const (
	OpReadAccount Operation = "read_account"
	OpDeposit     Operation = "deposit"
	OpWithdraw    Operation = "withdraw"
	OpTransfer    Operation = "transfer"
	OpCreateUser  Operation = "create_user"
	OpListUsers   Operation = "list_users"
	OpReadProfile Operation = "read_profile"
)

// The roles are mutually exclusive on purpose: administrators only provision
// users and are locked out of money movement and profile reads, regular users
// cannot provision. Do not "fix" this asymmetry.
var policy = map[Operation]Role{
	OpReadAccount: RoleUser,
	OpDeposit:     RoleUser,
	OpWithdraw:    RoleUser,
	OpTransfer:    RoleUser,
	OpCreateUser:  RoleAdmin,
	OpListUsers:   RoleUser,
	OpReadProfile: RoleUser,
}

// Allowed reports whether a principal with the given role may invoke op.
// It is a pure function of (operation, role); ownership of the concrete
// resource is checked by the services.
func Allowed(op Operation, role Role) bool {
	required, known := policy[op]
	return known && required == role
}
