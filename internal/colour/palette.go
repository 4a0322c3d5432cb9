package colour

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Role names one of the six palette slots.
type Role string

const (
	// RoleVibrant is a saturated colour of medium lightness.
	RoleVibrant Role = "Vibrant"
	// RoleDarkVibrant is a saturated dark colour.
	RoleDarkVibrant Role = "DarkVibrant"
	// RoleLightVibrant is a saturated light colour.
	RoleLightVibrant Role = "LightVibrant"
	// RoleMuted is a desaturated colour of medium lightness.
	RoleMuted Role = "Muted"
	// RoleDarkMuted is a desaturated dark colour.
	RoleDarkMuted Role = "DarkMuted"
	// RoleLightMuted is a desaturated light colour.
	RoleLightMuted Role = "LightMuted"
)

// Roles returns all roles in processing order.
func Roles() []Role {
	return []Role{
		RoleVibrant,
		RoleDarkVibrant,
		RoleLightVibrant,
		RoleMuted,
		RoleDarkMuted,
		RoleLightMuted,
	}
}

// IsValidRole checks if the given role name is one of the six slots.
func IsValidRole(role Role) bool {
	for _, r := range Roles() {
		if r == role {
			return true
		}
	}
	return false
}

// Palette holds up to one swatch per role. A nil field is an empty slot.
type Palette struct {
	Vibrant      *Swatch `json:"Vibrant"`
	Muted        *Swatch `json:"Muted"`
	DarkVibrant  *Swatch `json:"DarkVibrant"`
	DarkMuted    *Swatch `json:"DarkMuted"`
	LightVibrant *Swatch `json:"LightVibrant"`
	LightMuted   *Swatch `json:"LightMuted"`
}

// Get returns the swatch for role, or nil if the slot is empty or the role is unknown.
func (p *Palette) Get(role Role) *Swatch {
	if slot := p.slot(role); slot != nil {
		return *slot
	}
	return nil
}

// Set assigns s to the slot for role. Unknown roles are ignored.
func (p *Palette) Set(role Role, s *Swatch) {
	if slot := p.slot(role); slot != nil {
		*slot = s
	}
}

func (p *Palette) slot(role Role) **Swatch {
	switch role {
	case RoleVibrant:
		return &p.Vibrant
	case RoleDarkVibrant:
		return &p.DarkVibrant
	case RoleLightVibrant:
		return &p.LightVibrant
	case RoleMuted:
		return &p.Muted
	case RoleDarkMuted:
		return &p.DarkMuted
	case RoleLightMuted:
		return &p.LightMuted
	default:
		return nil
	}
}

// Len returns the number of filled slots.
func (p *Palette) Len() int {
	n := 0
	for _, s := range p.All() {
		if s != nil {
			n++
		}
	}
	return n
}

// IsEmpty reports whether every slot is empty.
func (p *Palette) IsEmpty() bool {
	return p.Len() == 0
}

// Contains reports whether any slot holds a swatch equal to s.
func (p *Palette) Contains(s *Swatch) bool {
	if s == nil {
		return false
	}
	for _, existing := range p.All() {
		if existing.Equal(s) {
			return true
		}
	}
	return false
}

// Equal reports whether both palettes hold the same colours and populations
// in every slot.
func (p *Palette) Equal(other *Palette) bool {
	for _, role := range Roles() {
		a, b := p.Get(role), other.Get(role)
		if a == nil || b == nil {
			if a != b {
				return false
			}
			continue
		}
		if a.rgb != b.rgb || a.population != b.population {
			return false
		}
	}
	return true
}

// All returns an iterator over every role and its swatch (possibly nil) in role order.
func (p *Palette) All() func(func(Role, *Swatch) bool) {
	return func(yield func(Role, *Swatch) bool) {
		for _, role := range Roles() {
			if !yield(role, p.Get(role)) {
				return
			}
		}
	}
}

// ToJSON converts the palette to indented JSON. Empty slots are null.
func (p *Palette) ToJSON() ([]byte, error) {
	return json.MarshalIndent(p, "", "  ")
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	if p.IsEmpty() {
		return "Empty palette"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Palette with %d swatches:\n", p.Len())
	for role, s := range p.All() {
		if s == nil {
			fmt.Fprintf(&sb, "  %-12s -\n", role)
			continue
		}
		fmt.Fprintf(&sb, "  %-12s %s (%s) population %d\n", role, s.Hex(), s.RGB().String(), s.Population())
	}
	return sb.String()
}
