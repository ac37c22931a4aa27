package script

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kittclouds/rolegen/internal/testkit"
	"github.com/kittclouds/rolegen/pkg/catalog"
)

func TestFilterApply(t *testing.T) {
	roles := testkit.Partial()

	tests := []struct {
		name   string
		filter Filter
		want   []int64
	}{
		{name: "role name folds case and space", filter: role("  dOcToR "), want: []int64{100}},
		{name: "role name with space", filter: role("coven leader"), want: []int64{120}},
		{name: "faction", filter: faction("mafia"), want: []int64{110, 111, 112}},
		{name: "label", filter: label("KILLER"), want: []int64{101, 103, 111}},
		{name: "subalignment is a tag", filter: label("Protective"), want: []int64{100, 101}},
		{name: "negated faction", filter: not(faction("Town")), want: []int64{110, 111, 112, 120}},
		{name: "unknown label", filter: label("nope"), want: []int64{}},
		{name: "union keeps catalog order", filter: union(faction("Coven"), role("Doctor")), want: []int64{100, 120}},
		{name: "union dedupes", filter: union(label("unique"), label("leader")), want: []int64{101, 110, 120}},
		{name: "negated union", filter: not(union(faction("Town"), faction("Mafia"))), want: []int64{120}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, testkit.IDs(tt.filter.Apply(roles)))
		})
	}
}

func TestFilterApply_Any(t *testing.T) {
	roles := testkit.Partial()

	all := label(AnyLabel).Apply(roles)
	assert.Equal(t, testkit.IDs(roles), testkit.IDs(all))

	assert.Empty(t, not(label(AnyLabel)).Apply(roles))

	// ANY inside a union still means every role.
	assert.Len(t, union(role("Doctor"), label(AnyLabel)).Apply(roles), len(roles))
}

func TestFilterApply_NegationIsInvolutive(t *testing.T) {
	roles := testkit.Partial()
	filters := []Filter{
		role("Doctor"), role("Mafioso"), role("missing"),
		faction("Town"), faction("Coven"),
		label("killer"), label("Killing"), label("unique"),
	}

	for _, f := range filters {
		t.Run(f.String(), func(t *testing.T) {
			pos := catalog.IDsOf(f.Apply(roles))
			neg := catalog.IDsOf(not(f).Apply(roles))
			for _, r := range roles {
				assert.NotEqual(t, pos.Contains(r.ID), neg.Contains(r.ID), "role %s", r.Name)
			}
		})
	}
}

func TestApplyAll_Intersects(t *testing.T) {
	roles := testkit.Partial()
	got := ApplyAll(roles, []Filter{faction("Town"), label("killer"), not(label("unique"))})
	assert.Equal(t, []int64{103}, testkit.IDs(got))

	assert.Equal(t, testkit.IDs(roles), testkit.IDs(ApplyAll(roles, nil)))
}

func TestLiterals(t *testing.T) {
	filters := ParseExpression("$Twon|%Docter!ANY killr").Filters
	assert.Equal(t, []string{"Twon", "Docter", "ANY killr"}, Literals(filters))

	assert.Empty(t, Literals(ParseExpression("ANY").Filters))
}

func TestFilterString(t *testing.T) {
	assert.Equal(t, "%Doctor", role("Doctor").String())
	assert.Equal(t, "!$Town", not(faction("Town")).String())
	assert.Equal(t, "killer", label("killer").String())
	assert.Equal(t, "a|!b", union(label("a"), not(label("b"))).String())
	assert.Equal(t, "!(a|b)", not(union(label("a"), label("b"))).String())
}
