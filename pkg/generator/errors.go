package generator

import (
	"errors"
	"fmt"
)

// ErrorKind classifies generation failures.
type ErrorKind int

const (
	// NoValidRolesForSlot: filters and modifiers left a slot with no candidates.
	NoValidRolesForSlot ErrorKind = iota + 1
	// InvalidWeight: a candidate's computed weight was not positive and finite.
	InvalidWeight
	// RoleMappingFailure: a picked role was missing from the source catalog.
	RoleMappingFailure
)

func (k ErrorKind) String() string {
	switch k {
	case NoValidRolesForSlot:
		return "no valid roles for slot"
	case InvalidWeight:
		return "invalid weight"
	case RoleMappingFailure:
		return "role mapping failure"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// GenerationError aborts a run. Slot is the 0-based index of the slot being
// filled; RoleID and Weight are set for InvalidWeight and RoleMappingFailure.
type GenerationError struct {
	Kind   ErrorKind
	Slot   int
	Source string
	RoleID int64
	Weight float64
}

// Sentinels for errors.Is.
var (
	ErrNoValidRoles  = &GenerationError{Kind: NoValidRolesForSlot}
	ErrInvalidWeight = &GenerationError{Kind: InvalidWeight}
	ErrRoleMapping   = &GenerationError{Kind: RoleMappingFailure}

	// ErrNoSlots is returned by GenerateScript for a script without slot lines.
	ErrNoSlots = errors.New("no slots specified")
)

func (e *GenerationError) Error() string {
	switch e.Kind {
	case NoValidRolesForSlot:
		return fmt.Sprintf("slot %d (%s): no valid roles", e.Slot+1, e.Source)
	case InvalidWeight:
		return fmt.Sprintf("slot %d (%s): role %d has weight %g", e.Slot+1, e.Source, e.RoleID, e.Weight)
	case RoleMappingFailure:
		return fmt.Sprintf("role %d missing from catalog", e.RoleID)
	}
	return e.Kind.String()
}

// Is matches any GenerationError of the same kind.
func (e *GenerationError) Is(target error) bool {
	t, ok := target.(*GenerationError)
	return ok && t.Kind == e.Kind
}
