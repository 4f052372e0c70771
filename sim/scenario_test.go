package sim

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warehouse-sim/warehouse-sim/sim/internal/testutil"
)

func TestParseScenario_Valid(t *testing.T) {
	input := `2 20 110 1
3
0 1 0
1 0 1
0 1 0
2
5 pac 10 org 0 dst 2
7 pac 11 org 2 dst 1
`
	sc, err := ParseScenario(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, TransportPolicy{Capacity: 2, Latency: 20, Interval: 110, RemovalCost: 1}, sc.Policy)
	assert.Equal(t, matrix(3, [2]int{0, 1}, [2]int{1, 2}), sc.Adjacency)
	assert.Equal(t, []PackageSpec{
		{ID: 10, PostTime: 5, Origin: 0, Destination: 2},
		{ID: 11, PostTime: 7, Origin: 2, Destination: 1},
	}, sc.Packages)
}

func TestParseScenario_TokensMayShareLines(t *testing.T) {
	input := "1 1 1 0 2 0 1 1 0 1 0 pacote 1 origem 0 destino 1"
	sc, err := ParseScenario(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, sc.Packages, 1)
}

func TestParseScenario_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"truncated policy", "1 2 3"},
		{"non numeric", "1 2 x 4"},
		{"matrix value", "1 1 1 0\n2\n0 2\n2 0\n0"},
		{"truncated matrix", "1 1 1 0\n2\n0 1\n1"},
		{"negative package count", "1 1 1 0\n1\n0\n-1"},
		{"truncated package", "1 1 1 0\n1\n0\n1\n0 pac 1 org 0"},
		{"asymmetric", "1 1 1 0\n2\n0 1\n0 0\n0"},
		{"origin out of range", "1 1 1 0\n1\n0\n1\n0 pac 1 org 3 dst 0"},
		{"duplicate id", "1 1 1 0\n1\n0\n2\n0 pac 1 org 0 dst 0\n1 pac 1 org 0 dst 0"},
		{"zero capacity", "0 1 1 0\n1\n0\n0"},
		{"package id too large", "1 1 1 0\n1\n0\n1\n0 pac 1000000 org 0 dst 0"},
		{"too many warehouses", "1 1 1 0\n1001\n"},
		{"post time beyond max time", "1 5 10 1\n2\n0 1\n1 0\n2\n0 pac 1 org 0 dst 1\n1000000000000 pac 2 org 0 dst 1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseScenario(strings.NewReader(tc.input))
			assert.Error(t, err)
		})
	}
}

func TestParseScenario_PostTimeBound(t *testing.T) {
	in := fmt.Sprintf("1 5 10 1\n2\n0 1\n1 0\n1\n%d pac 1 org 0 dst 1", int64(MaxTime))
	_, err := ParseScenario(strings.NewReader(in))
	require.NoError(t, err, "MaxTime itself is schedulable")

	in = fmt.Sprintf("1 5 10 1\n2\n0 1\n1 0\n1\n%d pac 1 org 0 dst 1", int64(MaxTime)+1)
	_, err = ParseScenario(strings.NewReader(in))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParseScenario_ErrorNamesField(t *testing.T) {
	_, err := ParseScenario(strings.NewReader("1 2 x 4"))
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "interval")
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("does/not/exist.txt")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLoadScenario_Testdata(t *testing.T) {
	sc, err := LoadScenario(testutil.ScenarioPath(t, "line_overflow"))
	require.NoError(t, err)
	assert.Equal(t, 1, sc.Policy.Capacity)
	assert.Len(t, sc.Adjacency, 3)
	assert.Len(t, sc.Packages, 2)
}
