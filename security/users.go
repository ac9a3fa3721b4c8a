package security

import (
	"github.com/ojas-mohbansi/memkit/internal/spin"
	"github.com/ojas-mohbansi/memkit/pkg/types"
)

// UserTable holds the registered principals and tracks which one is
// currently authenticated. The table has a fixed capacity and is never
// torn down; logging out clears the current principal but keeps the
// account.
//
// UserTable satisfies the PrincipalSource interface consumed by the
// region registry.
type UserTable struct {
	lock    spin.Lock
	users   []*Principal
	cap     int
	current *Principal
	log     *Log
}

// NewUserTable creates an empty table with the given capacity.
// capacity <= 0 uses the reference default of 16. The log may be nil.
func NewUserTable(capacity int, log *Log) *UserTable {
	if capacity <= 0 {
		capacity = types.MaxUsers
	}
	return &UserTable{
		users: make([]*Principal, 0, capacity),
		cap:   capacity,
		log:   log,
	}
}

// SeedDefaults registers the reference system's built-in accounts.
func (t *UserTable) SeedDefaults() {
	// Errors only occur on duplicates or a full table; both are
	// impossible on a fresh table.
	_ = t.Create("admin", "admin123", PrivilegeAdmin)
	_ = t.Create("guest", "guest", PrivilegeGuest)
}

// Create registers a new account. The password is stored only as its
// rolling hash.
func (t *UserTable) Create(name, password string, priv Privilege) error {
	if name == "" {
		return ErrEmptyName
	}

	t.lock.Acquire()
	defer t.lock.Release()

	if t.find(name) != nil {
		return ErrUserExists
	}
	if len(t.users) >= t.cap {
		t.logViolation("USER_TABLE_FULL", "User creation refused: table full", nil)
		return ErrUserTableFull
	}

	t.users = append(t.users, &Principal{
		Name:         name,
		Privilege:    priv,
		passwordHash: hashPassword(password),
	})
	t.logEvent("USER_CREATED", "User account created: "+name, nil)
	return nil
}

// Authenticate verifies the credentials and makes the account the
// current principal.
func (t *UserTable) Authenticate(name, password string) (*Principal, error) {
	t.lock.Acquire()
	defer t.lock.Release()

	u := t.find(name)
	if u == nil {
		t.logViolation("UNKNOWN_USER", "Login attempt for unknown user: "+name, nil)
		return nil, ErrUnknownUser
	}
	if u.passwordHash != hashPassword(password) {
		t.logViolation("BAD_CREDENTIALS", "Login failure for user: "+name, nil)
		return nil, ErrBadCredentials
	}

	t.current = u
	t.logEvent("USER_LOGIN", "User authenticated: "+name, u)
	return u, nil
}

// Logout clears the current principal. Subsequent allocations are
// refused until another authentication succeeds.
func (t *UserTable) Logout() {
	t.lock.Acquire()
	defer t.lock.Release()

	if t.current != nil {
		t.logEvent("USER_LOGOUT", "User logged out: "+t.current.Name, t.current)
		t.current = nil
	}
}

// Current returns the authenticated principal, or nil when nobody is
// logged in.
func (t *UserTable) Current() *Principal {
	t.lock.Acquire()
	defer t.lock.Release()
	return t.current
}

// Len returns the number of registered accounts.
func (t *UserTable) Len() int {
	t.lock.Acquire()
	defer t.lock.Release()
	return len(t.users)
}

// find must be called with the lock held.
func (t *UserTable) find(name string) *Principal {
	for _, u := range t.users {
		if u.Name == name {
			return u
		}
	}
	return nil
}

func (t *UserTable) logEvent(tag, detail string, p *Principal) {
	if t.log != nil {
		t.log.LogEvent(tag, detail, p)
	}
}

func (t *UserTable) logViolation(tag, detail string, p *Principal) {
	if t.log != nil {
		t.log.LogViolation(tag, detail, p)
	}
}
