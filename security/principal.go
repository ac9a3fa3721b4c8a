package security

// Privilege is the coarse authorization level of a principal.
type Privilege uint8

const (
	PrivilegeGuest Privilege = iota
	PrivilegeUser
	PrivilegeAdmin
)

// String returns the privilege name used in log output.
func (p Privilege) String() string {
	switch p {
	case PrivilegeGuest:
		return "guest"
	case PrivilegeUser:
		return "user"
	case PrivilegeAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// Principal is an authenticated identity. Memory regions record the
// allocating principal as their owner; later accesses by a different
// principal are refused.
//
// Principal values are handed out by the UserTable and compared by
// pointer identity, mirroring the reference system where an owner is a
// pointer into the user table.
type Principal struct {
	Name      string
	Privilege Privilege

	passwordHash uint32
}
