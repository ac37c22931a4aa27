package generator

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittclouds/rolegen/internal/testkit"
	"github.com/kittclouds/rolegen/pkg/catalog"
	"github.com/kittclouds/rolegen/pkg/script"
)

// subset returns the fixture roles with the given IDs.
func subset(ids ...int64) []catalog.Role {
	keep := catalog.NewIDSet(ids...)
	var out []catalog.Role
	for _, r := range testkit.Roles() {
		if keep.Contains(r.ID) {
			out = append(out, r)
		}
	}
	return out
}

func parse(t *testing.T, text string, roles []catalog.Role) *script.Rolelist {
	t.Helper()
	rl, err := Prepare(text, roles)
	require.NoError(t, err)
	return rl
}

func TestGenerate_SingleRoleByName(t *testing.T) {
	roles := testkit.Roles()
	out, err := NewSeeded(1).GenerateScript("%Doctor", roles)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Doctor", out[0].Name)
	assert.Equal(t, testkit.Protective, out[0].Subalignment)
}

func TestGenerate_OneRolePerSlot(t *testing.T) {
	roles := testkit.Roles()
	text := "$Town\n$Mafia\nkiller\n-ANY\n!$Town"
	rl := parse(t, text, roles)
	all := catalog.Project(roles)

	for seed := int64(1); seed <= 50; seed++ {
		out, err := NewSeeded(seed).Generate(rl, roles)
		require.NoError(t, err)
		require.Len(t, out, len(rl.Slots))
		for i, r := range out {
			allowed := catalog.IDsOf(script.ApplyAll(all, rl.SlotFilters(i)))
			assert.True(t, allowed.Contains(r.ID), "slot %d drew %s", i, r.Name)
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	roles := testkit.Roles()
	rl := parse(t, "ANY\nANY\nANY\n=killer:*3", roles)

	a, err := NewSeeded(7).Generate(rl, roles)
	require.NoError(t, err)
	b, err := NewSeeded(7).Generate(rl, roles)
	require.NoError(t, err)
	assert.Equal(t, testkit.RoleIDs(a), testkit.RoleIDs(b))
}

func TestGenerate_DoesNotModifyRolelist(t *testing.T) {
	roles := testkit.Roles()
	rl := parse(t, "?indv\n=$Town:+5:1\n$Town\n$Town", roles)
	before := rl.Clone()

	_, err := NewSeeded(3).Generate(rl, roles)
	require.NoError(t, err)
	if diff := cmp.Diff(before, rl); diff != "" {
		t.Errorf("rolelist changed (-before +after):\n%s", diff)
	}
}

func TestGenerate_IndividualityKeepsPicksDistinct(t *testing.T) {
	roles := subset(110, 111, 112)
	rl := parse(t, "?indv\n$Mafia\n$Mafia", roles)

	for seed := int64(1); seed <= 100; seed++ {
		out, err := NewSeeded(seed).Generate(rl, roles)
		require.NoError(t, err)
		require.Len(t, out, 2)
		assert.NotEqual(t, out[0].ID, out[1].ID)
	}
}

func TestGenerate_IndividualityExhaustsCatalog(t *testing.T) {
	roles := subset(110, 111, 112)
	_, err := NewSeeded(1).GenerateScript("?indv\n$Mafia\n$Mafia\n$Mafia\n$Mafia", roles)

	var gerr *GenerationError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, NoValidRolesForSlot, gerr.Kind)
	assert.Equal(t, 3, gerr.Slot)
}

func TestGenerate_LimitFailsLaterSlots(t *testing.T) {
	roles := subset(100, 102, 111)
	_, err := NewSeeded(1).GenerateScript("?limit:$Mafia:1\n$Mafia\n$Mafia\n$Mafia", roles)

	require.ErrorIs(t, err, ErrNoValidRoles)
	var gerr *GenerationError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, 1, gerr.Slot)
	assert.Equal(t, "$Mafia", gerr.Source)
	assert.Contains(t, err.Error(), "slot 2")
}

func TestGenerate_LimitNeverExceeded(t *testing.T) {
	roles := testkit.Roles()
	rl := parse(t, "?limit:$Mafia:2\nANY\nANY\nANY\nANY\nANY", roles)
	mafia := catalog.NewIDSet(110, 111, 112)

	for seed := int64(1); seed <= 100; seed++ {
		out, err := NewSeeded(seed).Generate(rl, roles)
		require.NoError(t, err)
		n := 0
		for _, r := range out {
			if mafia.Contains(r.ID) {
				n++
			}
		}
		assert.LessOrEqual(t, n, 2)
	}
}

func TestGenerate_MutualExclusive(t *testing.T) {
	roles := testkit.Roles()
	rl := parse(t, "?exc:%Godfather:%Coven Leader\n?indv\nleader\nleader", roles)

	_, err := NewSeeded(1).Generate(rl, roles)
	assert.ErrorIs(t, err, ErrNoValidRoles)
}

func TestGenerate_GlobalFilters(t *testing.T) {
	roles := testkit.Roles()

	out, err := NewSeeded(1).GenerateScript("+$Town\n-$Mafia\n%Doctor", roles)
	require.NoError(t, err)
	assert.Equal(t, "Mafia", out[0].Faction.Name)
	assert.Equal(t, "Doctor", out[1].Name)

	_, err = NewSeeded(1).GenerateScript("+$Town\n$Mafia", roles)
	assert.ErrorIs(t, err, ErrNoValidRoles)
}

func TestGenerate_InvalidWeight(t *testing.T) {
	roles := testkit.Roles()
	_, err := NewSeeded(1).GenerateScript("=%Doctor:-10\n$Town", roles)

	require.ErrorIs(t, err, ErrInvalidWeight)
	var gerr *GenerationError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, int64(100), gerr.RoleID)
	assert.Equal(t, 0.0, gerr.Weight)
	assert.Equal(t, 0, gerr.Slot)
}

func TestGenerate_InfiniteWeight(t *testing.T) {
	roles := subset(100, 102)
	_, err := NewSeeded(1).GenerateScript("=$Town:*1e308\n=$Town:*10\n$Town", roles)

	require.ErrorIs(t, err, ErrInvalidWeight)
	var gerr *GenerationError
	require.ErrorAs(t, err, &gerr)
	assert.True(t, math.IsInf(gerr.Weight, 1))
}

func TestGenerate_EmptyRoleTermMatchesNothing(t *testing.T) {
	roles := testkit.Roles()

	_, err := NewSeeded(1).GenerateScript("%", roles)
	assert.ErrorIs(t, err, ErrNoValidRoles)

	_, err = NewSeeded(1).GenerateScript("$Town%", roles)
	assert.ErrorIs(t, err, ErrNoValidRoles)
}

func TestGenerate_InvalidWeightOnlyForCandidates(t *testing.T) {
	roles := testkit.Roles()
	out, err := NewSeeded(1).GenerateScript("=%Doctor:-10\n$Mafia", roles)
	require.NoError(t, err)
	assert.Equal(t, "Mafia", out[0].Faction.Name)
}

func TestWeights_BoostedEqually(t *testing.T) {
	roles := subset(100, 102, 111)
	rl := parse(t, "=$Town:+50\n$Town", roles)

	got := Weights(rl, script.ApplyAll(catalog.Project(roles), rl.SlotFilters(0)))
	assert.Equal(t, map[int64]float64{100: 60, 102: 60}, got)
}

func TestWeights_OrderMatters(t *testing.T) {
	roles := subset(100, 102)
	candidates := catalog.Project(roles)

	setThenDouble := Weights(parse(t, "=%Doctor:5\n=%Doctor:*2\nANY", roles), candidates)
	doubleThenSet := Weights(parse(t, "=%Doctor:*2\n=%Doctor:5\nANY", roles), candidates)

	assert.Equal(t, 10.0, setThenDouble[100])
	assert.Equal(t, 5.0, doubleThenSet[100])
	assert.Equal(t, BaseWeight, setThenDouble[102])
}

func TestGenerate_LogsSlots(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := NewSeeded(1, WithLogger(logger)).GenerateScript("%Sheriff", testkit.Roles())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "slot filled")
	assert.Contains(t, buf.String(), "role=Sheriff")
}

func TestGenerateScript_Errors(t *testing.T) {
	roles := testkit.Roles()

	_, err := NewSeeded(1).GenerateScript("+$Town\n?indv\n\n", roles)
	assert.ErrorIs(t, err, ErrNoSlots)

	_, err = NewSeeded(1).GenerateScript("?unknownmodifier:%Doctor\n%Doctor", roles)
	assert.ErrorIs(t, err, script.ErrUnknownDirective)
	var perr *script.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 1, perr.Line)
}

func TestGenerationError_Is(t *testing.T) {
	err := &GenerationError{Kind: RoleMappingFailure, RoleID: 9}
	assert.ErrorIs(t, err, ErrRoleMapping)
	assert.NotErrorIs(t, err, ErrInvalidWeight)
	assert.Equal(t, "role 9 missing from catalog", err.Error())
}

func TestSample_UniformUnderEqualBoost(t *testing.T) {
	roles := subset(100, 102, 111)
	tally, err := Sample(context.Background(), "=$Town:+50\n$Town", roles, SampleOptions{Runs: 4000, Seed: 11})
	require.NoError(t, err)

	assert.Equal(t, 4000, tally.Succeeded())
	assert.InDelta(t, 0.5, tally.Share(0, 100), 0.04)
	assert.InDelta(t, 0.5, tally.Share(0, 102), 0.04)
	assert.Zero(t, tally.Share(0, 111))
}

func TestSample_HugeWeightsStayUniform(t *testing.T) {
	roles := subset(100, 102)
	tally, err := Sample(context.Background(), "=$Town:1e308\n$Town", roles, SampleOptions{Runs: 4000, Seed: 3})
	require.NoError(t, err)

	assert.Equal(t, 4000, tally.Succeeded())
	assert.InDelta(t, 0.5, tally.Share(0, 100), 0.04)
	assert.InDelta(t, 0.5, tally.Share(0, 102), 0.04)
}

func TestSample_WeightOrderChangesDistribution(t *testing.T) {
	roles := subset(100, 102)
	opts := SampleOptions{Runs: 6000, Seed: 5}

	a, err := Sample(context.Background(), "=%Doctor:5\n=%Doctor:*2\nANY", roles, opts)
	require.NoError(t, err)
	b, err := Sample(context.Background(), "=%Doctor:*2\n=%Doctor:5\nANY", roles, opts)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, a.Share(0, 100), 0.04)
	assert.InDelta(t, 1.0/3, b.Share(0, 100), 0.04)
}

func TestSample_UsageLimitSpent(t *testing.T) {
	roles := subset(100, 102)
	text := "=%Doctor:+1000:1\n%Doctor|%Sheriff\n%Doctor|%Sheriff"
	tally, err := Sample(context.Background(), text, roles, SampleOptions{Runs: 4000, Seed: 1, Parallel: 4})
	require.NoError(t, err)

	// First slot: 1010 against 10. Once Doctor is drawn the boost is spent.
	assert.Greater(t, tally.Share(0, 100), 0.97)
	assert.InDelta(t, 0.5, tally.Share(1, 100), 0.05)
}

func TestSample_CountsFailures(t *testing.T) {
	roles := subset(110, 111)
	tally, err := Sample(context.Background(), "?indv\n$Mafia\n$Mafia\n$Mafia", roles, SampleOptions{Runs: 20})
	require.NoError(t, err)
	assert.Equal(t, 20, tally.Failures[NoValidRolesForSlot])
	assert.Zero(t, tally.Succeeded())
	assert.Zero(t, tally.Share(0, 110))
}

func TestSample_Errors(t *testing.T) {
	roles := testkit.Roles()

	_, err := Sample(context.Background(), "%Doctor", roles, SampleOptions{})
	assert.Error(t, err)

	_, err = Sample(context.Background(), "?limit:%Nobody", roles, SampleOptions{Runs: 1})
	assert.ErrorIs(t, err, script.ErrNoMatchingRoles)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Sample(ctx, "%Doctor", roles, SampleOptions{Runs: 5})
	assert.ErrorIs(t, err, context.Canceled)
}
