package types

import (
	"fmt"
	"strings"
)

// BCTAG is the per-node structural boundary condition. The integer values are
// the ones written to the structural bundle.
type BCTAG int8

const (
	BC_FreeTip BCTAG = -1
	BC_Free    BCTAG = 0
	BC_Clamped BCTAG = 1
)

var BCNameMap = map[string]BCTAG{
	"free":     BC_Free,
	"none":     BC_Free,
	"clamped":  BC_Clamped,
	"clamp":    BC_Clamped,
	"fixed":    BC_Clamped,
	"free-tip": BC_FreeTip,
	"freetip":  BC_FreeTip,
	"tip":      BC_FreeTip,
}

func NewBCTAG(label string) (bc BCTAG, err error) {
	var ok bool
	if bc, ok = BCNameMap[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = &ConfigurationError{Op: "boundary condition",
			Msg: fmt.Sprintf("unknown boundary condition %q", label)}
	}
	return
}

func (bc BCTAG) Valid() bool {
	return bc >= BC_FreeTip && bc <= BC_Clamped
}

func (bc BCTAG) String() string {
	switch bc {
	case BC_FreeTip:
		return "free-tip"
	case BC_Free:
		return "free"
	case BC_Clamped:
		return "clamped"
	default:
		return fmt.Sprintf("BCTAG(%d)", int8(bc))
	}
}
