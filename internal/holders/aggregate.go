package holders

import (
	"fmt"

	"github.com/conn-castle/nftdeploy/internal/canister"
	"github.com/conn-castle/nftdeploy/internal/messages"
)

// Strategy selects how the three-way intersection treats repeated holders.
type Strategy string

const (
	// StrategyMin keeps min(count in each registry) copies of every holder of the
	// first registry.
	StrategyMin        Strategy = "min"
	// StrategyMembership keeps each holder present in all three registries once.
	StrategyMembership Strategy = "membership"
)

// ParseStrategy resolves a strategy name; empty means StrategyMin.
func ParseStrategy(name string) (Strategy, error) {
	switch Strategy(name) {
	case "", StrategyMin:
		return StrategyMin, nil
	case StrategyMembership:
		return StrategyMembership, nil
	default:
		return "", fmt.Errorf(messages.HoldersStrategyFmt, name)
	}
}

// Project returns the holder column of rows, one entry per token.
func Project(rows []canister.Holding) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Holder
	}
	return out
}

// Unique drops repeated holders, keeping first appearances in order.
func Unique(holders []string) []string {
	seen := make(map[string]struct{}, len(holders))
	out := make([]string, 0, len(holders))
	for _, h := range holders {
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	return out
}

// Union concatenates a and b and drops repeats.
func Union(a []string, b []string) []string {
	all := make([]string, 0, len(a)+len(b))
	all = append(all, a...)
	all = append(all, b...)
	return Unique(all)
}

// Intersect combines the three holder lists, ordered by first appearance in first.
func Intersect(strategy Strategy, first []string, second []string, third []string) []string {
	c1, c2, c3 := counts(first), counts(second), counts(third)
	var out []string
	for _, h := range Unique(first) {
		if strategy == StrategyMembership {
			if c2[h] > 0 && c3[h] > 0 {
				out = append(out, h)
			}
			continue
		}
		for range min(c1[h], c2[h], c3[h]) {
			out = append(out, h)
		}
	}
	return out
}

func counts(holders []string) map[string]int {
	c := make(map[string]int, len(holders))
	for _, h := range holders {
		c[h]++
	}
	return c
}

// Result holds the three holder lists written as artifacts.
type Result struct {
	Trilogy []string
	First   []string
	Union   []string
}

// Aggregate computes every list from the three projected registries.
func Aggregate(strategy Strategy, first []string, second []string, third []string) Result {
	return Result{
		Trilogy: Intersect(strategy, first, second, third),
		First:   Unique(first),
		Union:   Union(second, third),
	}
}
