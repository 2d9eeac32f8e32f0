package scheme

import (
	"strings"

	"github.com/jmylchreest/swatch/internal/colour"
)

// LockSet is the set of roles pinned by the user. The zero value is an empty set.
// It implements pflag.Value so it can back a repeatable --lock flag.
type LockSet struct {
	roles map[colour.Role]struct{}
}

// NewLockSet returns a set holding roles.
func NewLockSet(roles ...colour.Role) LockSet {
	var l LockSet
	for _, r := range roles {
		l.Lock(r)
	}
	return l
}

// Lock pins a role.
func (l *LockSet) Lock(r colour.Role) {
	if l.roles == nil {
		l.roles = make(map[colour.Role]struct{})
	}
	l.roles[r] = struct{}{}
}

// Unlock releases a role.
func (l *LockSet) Unlock(r colour.Role) {
	delete(l.roles, r)
}

// Has reports whether r is locked.
func (l LockSet) Has(r colour.Role) bool {
	_, ok := l.roles[r]
	return ok
}

// Len returns the number of locked roles.
func (l LockSet) Len() int {
	return len(l.roles)
}

// Roles returns the locked roles in palette display order.
func (l LockSet) Roles() []colour.Role {
	var out []colour.Role
	for _, r := range colour.AllRoles() {
		if l.Has(r) {
			out = append(out, r)
		}
	}
	return out
}

// Apply overwrites every locked role of candidate with its value in current.
func (l LockSet) Apply(candidate, current colour.Palette) colour.Palette {
	for _, r := range l.Roles() {
		candidate = candidate.With(r, current.Get(r))
	}
	return candidate
}

// String implements pflag.Value.
func (l *LockSet) String() string {
	roles := l.Roles()
	names := make([]string, len(roles))
	for i, r := range roles {
		names[i] = string(r)
	}
	return strings.Join(names, ",")
}

// Set implements pflag.Value. It accepts one role or a comma-separated list.
func (l *LockSet) Set(value string) error {
	for _, part := range strings.Split(value, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		r, err := colour.ParseRole(part)
		if err != nil {
			return err
		}
		l.Lock(r)
	}
	return nil
}

// Type implements pflag.Value.
func (l *LockSet) Type() string {
	return "roles"
}

// Request describes one regeneration.
type Request struct {
	Scheme  Type
	Dark    bool
	Current colour.Palette
	Locked  LockSet

	// Accessible routes the request through the accessibility loop.
	Accessible bool

	// PreserveMood, when set, varies the current palette instead of drawing a
	// new scheme. It names a mood whose palette is used if Current is incomplete.
	PreserveMood string
}

// GenerateWithLocks regenerates a palette and then restores every locked role
// from req.Current, so locks win over any generation path.
func (g *Generator) GenerateWithLocks(req Request) (colour.Palette, error) {
	if req.Accessible {
		return g.GenerateAccessible(req)
	}

	candidate, err := g.candidate(req)
	if err != nil {
		return colour.Palette{}, err
	}
	return req.Locked.Apply(candidate, req.Current), nil
}

// candidate draws one unlocked palette: a mood variation when a mood is being
// preserved, otherwise a fresh scheme.
func (g *Generator) candidate(req Request) (colour.Palette, error) {
	if req.PreserveMood != "" {
		base, err := moodBase(req.PreserveMood, req.Current)
		if err != nil {
			return colour.Palette{}, err
		}
		return g.MoodVariation(base, req.Locked), nil
	}
	return g.Generate(req.Scheme, req.Dark)
}
