package script

import (
	"fmt"
	"strconv"

	"github.com/kittclouds/rolegen/pkg/catalog"
)

// WeightOp is the arithmetic a weight changer applies.
type WeightOp int

const (
	WeightSet WeightOp = iota
	WeightAdd
	WeightSubtract
	WeightMultiply
	WeightDivide
)

func (op WeightOp) String() string {
	switch op {
	case WeightSet:
		return "set"
	case WeightAdd:
		return "add"
	case WeightSubtract:
		return "subtract"
	case WeightMultiply:
		return "multiply"
	case WeightDivide:
		return "divide"
	}
	return fmt.Sprintf("WeightOp(%d)", int(op))
}

func (op WeightOp) symbol() string {
	switch op {
	case WeightSet:
		return "="
	case WeightAdd:
		return "+"
	case WeightSubtract:
		return "-"
	case WeightMultiply:
		return "*"
	case WeightDivide:
		return "/"
	}
	return ""
}

// WeightChanger adjusts the lottery weight of its target roles. When Limited,
// it stops applying once Limit of its targets have been selected in a run;
// the remaining budget is tracked by the generator, not here.
type WeightChanger struct {
	Op       WeightOp
	Targets  catalog.IDSet
	Argument float64
	Limited  bool
	Limit    int
}

// Covers reports whether the changer targets the role.
func (w WeightChanger) Covers(id int64) bool {
	return w.Targets.Contains(id)
}

// Apply returns the weight after this changer.
func (w WeightChanger) Apply(weight float64) float64 {
	switch w.Op {
	case WeightSet:
		return w.Argument
	case WeightAdd:
		return weight + w.Argument
	case WeightSubtract:
		return weight - w.Argument
	case WeightMultiply:
		return weight * w.Argument
	case WeightDivide:
		return weight / w.Argument
	}
	panic(fmt.Sprintf("script: no arithmetic for %s weight changer", w.Op))
}

func (w WeightChanger) String() string {
	s := fmt.Sprintf("%s%s on %d roles", w.Op.symbol(), strconv.FormatFloat(w.Argument, 'g', -1, 64), w.Targets.Len())
	if w.Limited {
		s += fmt.Sprintf(" (%d uses)", w.Limit)
	}
	return s
}
