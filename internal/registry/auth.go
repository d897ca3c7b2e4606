package registry

import "encoding/hex"

// Identity is the opaque caller identity supplied by the host environment.
// The registry never interprets it beyond equality.
type Identity [20]byte

func (id Identity) String() string {
	return hex.EncodeToString(id[:])
}

func (id Identity) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// Role is one of the privileged writer roles recognised by the registry.
type Role uint8

const (
	RoleNone Role = iota
	// RoleKeeper may register queries and store results.
	RoleKeeper
	// RoleVault maintains the ranker attestation slots.
	RoleVault
	// RoleOracle may bump the epoch explicitly.
	RoleOracle
)

func (r Role) String() string {
	switch r {
	case RoleKeeper:
		return "keeper"
	case RoleVault:
		return "vault"
	case RoleOracle:
		return "oracle"
	default:
		return "none"
	}
}

// Authorizer decides whether a caller holds a given role. It is injected at
// registry construction so the host's access control can be swapped or
// mocked without touching the core.
type Authorizer interface {
	Authorize(caller Identity, role Role) bool
}

// StaticAuthorizer is an Authorizer backed by a fixed identity-to-role map.
// An identity holds at most one role.
type StaticAuthorizer struct {
	roles map[Identity]Role
}

func NewStaticAuthorizer(roles map[Identity]Role) *StaticAuthorizer {
	cp := make(map[Identity]Role, len(roles))
	for id, r := range roles {
		cp[id] = r
	}
	return &StaticAuthorizer{roles: cp}
}

func (a *StaticAuthorizer) Authorize(caller Identity, role Role) bool {
	return a.roles[caller] == role && role != RoleNone
}
