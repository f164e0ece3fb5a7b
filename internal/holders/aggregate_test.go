package holders

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/nftdeploy/internal/canister"
)

func TestAggregateWorkedExample(t *testing.T) {
	reg1 := []string{"A", "A", "B"}
	reg2 := []string{"A", "B", "B"}
	reg3 := []string{"A", "B"}

	res := Aggregate(StrategyMin, reg1, reg2, reg3)
	assert.Equal(t, []string{"A", "B"}, res.Trilogy)
	assert.Equal(t, []string{"A", "B"}, res.First)
	assert.Equal(t, []string{"A", "B"}, res.Union)

	res = Aggregate(StrategyMembership, reg1, reg2, reg3)
	assert.Equal(t, []string{"A", "B"}, res.Trilogy)
}

func TestIntersectStrategiesDiverge(t *testing.T) {
	reg1 := []string{"C", "A", "A", "A", "B"}
	reg2 := []string{"A", "A", "A", "C"}
	reg3 := []string{"A", "A", "B", "C", "C"}

	assert.Equal(t, []string{"C", "A", "A"}, Intersect(StrategyMin, reg1, reg2, reg3))
	assert.Equal(t, []string{"C", "A"}, Intersect(StrategyMembership, reg1, reg2, reg3))
}

func TestIntersectIgnoresHoldersMissingFromFirst(t *testing.T) {
	assert.Empty(t, Intersect(StrategyMin, []string{"A"}, []string{"B"}, []string{"B"}))
	assert.Empty(t, Intersect(StrategyMin, nil, []string{"B"}, []string{"B"}))
	assert.Empty(t, Intersect(StrategyMembership, []string{"B"}, []string{"B"}, nil))
}

func TestUniqueAndUnionKeepFirstAppearance(t *testing.T) {
	assert.Equal(t, []string{"b", "a", "c"}, Unique([]string{"b", "a", "b", "c", "a"}))
	assert.Equal(t, []string{"x", "y", "z"}, Union([]string{"x", "y"}, []string{"y", "z", "x"}))
	assert.Empty(t, Union(nil, nil))
}

func TestProject(t *testing.T) {
	rows := []canister.Holding{{TokenID: 1, Holder: "A"}, {TokenID: 2, Holder: "A"}, {TokenID: 7, Holder: "B"}}
	assert.Equal(t, []string{"A", "A", "B"}, Project(rows))
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy("")
	require.NoError(t, err)
	assert.Equal(t, StrategyMin, s)

	s, err = ParseStrategy("membership")
	require.NoError(t, err)
	assert.Equal(t, StrategyMembership, s)

	_, err = ParseStrategy("max")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown intersection strategy "max"`)
}
