package script

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kittclouds/rolegen/internal/testkit"
	"github.com/kittclouds/rolegen/pkg/catalog"
)

func pick(roles []catalog.PartialRole, ids ...int64) []catalog.PartialRole {
	return catalog.NewIDSet(ids...).Select(roles)
}

func TestIndividuality(t *testing.T) {
	roles := testkit.Partial()
	m := NewIndividuality(catalog.NewIDSet(100, 110))

	got := m.Narrow(roles, pick(roles, 100, 101))
	// Doctor is individual and taken; Bodyguard is not individual.
	assert.NotContains(t, testkit.IDs(got), int64(100))
	assert.Contains(t, testkit.IDs(got), int64(101))
	assert.Contains(t, testkit.IDs(got), int64(110))
	assert.Len(t, got, len(roles)-1)

	assert.Equal(t, testkit.IDs(roles), testkit.IDs(m.Narrow(roles, nil)))
}

func TestLimit(t *testing.T) {
	roles := testkit.Partial()
	mafia := catalog.NewIDSet(110, 111, 112)

	one := NewLimit(mafia, 1)
	got := one.Narrow(roles, pick(roles, 110))
	assert.Equal(t, []int64{100, 101, 102, 103, 120}, testkit.IDs(got))

	two := NewLimit(mafia, 2)
	assert.Len(t, two.Narrow(roles, pick(roles, 110)), len(roles))
	assert.Len(t, two.Narrow(roles, pick(roles, 110, 111)), 5)

	zero := NewLimit(mafia, 0)
	assert.Len(t, zero.Narrow(roles, nil), 5)
}

func TestMutualExclusive_SingleGroup(t *testing.T) {
	roles := testkit.Partial()
	leaders := catalog.NewIDSet(110, 120)
	m := NewMutualExclusive(leaders, catalog.IDSet{})

	assert.Len(t, m.Narrow(roles, pick(roles, 100)), len(roles))

	got := m.Narrow(roles, pick(roles, 120))
	assert.NotContains(t, testkit.IDs(got), int64(110))
	assert.NotContains(t, testkit.IDs(got), int64(120))
	assert.Len(t, got, len(roles)-2)
}

func TestMutualExclusive_TwoGroups(t *testing.T) {
	roles := testkit.Partial()
	m := NewMutualExclusive(catalog.NewIDSet(100), catalog.NewIDSet(110, 111))

	afterDoctor := testkit.IDs(m.Narrow(roles, pick(roles, 100)))
	assert.Contains(t, afterDoctor, int64(100), "own group stays open")
	assert.NotContains(t, afterDoctor, int64(110))
	assert.NotContains(t, afterDoctor, int64(111))

	afterMafioso := testkit.IDs(m.Narrow(roles, pick(roles, 111)))
	assert.NotContains(t, afterMafioso, int64(100))
	assert.Contains(t, afterMafioso, int64(110))
}

func TestModifiers_NeverAdd(t *testing.T) {
	roles := testkit.Partial()
	candidates := pick(roles, 100, 102)
	mods := []Modifier{
		NewIndividuality(catalog.IDsOf(roles)),
		NewLimit(catalog.IDsOf(roles), 5),
		NewMutualExclusive(catalog.NewIDSet(110), catalog.NewIDSet(100)),
	}
	for _, m := range mods {
		got := m.Narrow(candidates, pick(roles, 111))
		for _, r := range got {
			assert.Contains(t, testkit.IDs(candidates), r.ID, m.String())
		}
	}
}

func TestWeightChangerApply(t *testing.T) {
	tests := []struct {
		op   WeightOp
		arg  float64
		want float64
	}{
		{WeightSet, 5, 5},
		{WeightAdd, 50, 60},
		{WeightSubtract, 3, 7},
		{WeightMultiply, 2, 20},
		{WeightDivide, 4, 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			w := WeightChanger{Op: tt.op, Argument: tt.arg}
			assert.Equal(t, tt.want, w.Apply(10))
		})
	}
}

func TestWeightChanger_OrderMatters(t *testing.T) {
	set := WeightChanger{Op: WeightSet, Argument: 5}
	double := WeightChanger{Op: WeightMultiply, Argument: 2}

	assert.Equal(t, 10.0, double.Apply(set.Apply(10)))
	assert.Equal(t, 5.0, set.Apply(double.Apply(10)))
}
