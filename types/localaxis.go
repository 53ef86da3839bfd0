package types

import "strings"

// LocalAxis selects the global direction used as the secondary (yB) axis of
// every beam section.
type LocalAxis uint8

const (
	LocalX LocalAxis = iota
	LocalY
	LocalZ
)

var localAxisNames = map[string]LocalAxis{
	"local-x": LocalX,
	"local-y": LocalY,
	"local-z": LocalZ,
	"x_afor":  LocalX,
	"y_afor":  LocalY,
	"z_afor":  LocalZ,
	"x":       LocalX,
	"y":       LocalY,
	"z":       LocalZ,
}

// ParseLocalAxis reports ok=false for an unknown keyword, in which case the
// returned axis is LocalY.
func ParseLocalAxis(keyword string) (axis LocalAxis, ok bool) {
	if axis, ok = localAxisNames[strings.ToLower(strings.TrimSpace(keyword))]; !ok {
		axis = LocalY
	}
	return
}

func (la LocalAxis) UnitVector() [3]float64 {
	var v [3]float64
	v[la] = 1
	return v
}

func (la LocalAxis) String() string {
	return [...]string{"local-x", "local-y", "local-z"}[la]
}
