package strategy

import (
	"contentops/internal/config"
	"contentops/internal/domain"
)

// Policy names for the randomized fallback.
const (
	PolicyAggressive   = "aggressive"
	PolicyConservative = "conservative"
	PolicyBalanced     = "balanced"
)

// Decision is the selector's output: the action to execute and, when it was
// driven by telemetry, the insight that suggested it.
type Decision struct {
	Action  domain.Action
	Insight *domain.Insight
}

// Selector picks the single next action. It is a pure decision function: the
// injected random source is the only non-determinism.
type Selector struct {
	cfg  config.StrategyConfig
	rand func() float64
}

// New builds a selector. random supplies uniform draws in [0, 1); it is a
// parameter so tests can fix the draw.
func New(cfg config.StrategyConfig, random func() float64) *Selector {
	return &Selector{cfg: cfg, rand: random}
}

// Select returns exactly one decision. Insights must already be sorted in
// descending priority; the first one wins. With no insights and no existing
// artifacts the bootstrap rule applies regardless of policy.
func (s *Selector) Select(insights []domain.Insight, artifactCount int) Decision {
	if len(insights) > 0 {
		top := insights[0]
		return Decision{Action: top.SuggestedAction, Insight: &top}
	}

	if artifactCount == 0 {
		return Decision{Action: domain.ActionCreateNew}
	}

	p := s.rand()
	switch s.cfg.Policy {
	case PolicyAggressive:
		if p < s.cfg.AggressiveThreshold {
			return Decision{Action: domain.ActionCreateNew}
		}
		return Decision{Action: domain.ActionContentExpansion}
	case PolicyConservative:
		if p < s.cfg.ConservativeThreshold {
			return Decision{Action: domain.ActionCreateNew}
		}
		return Decision{Action: domain.ActionMetaOptimization}
	default:
		if p < s.cfg.BalancedThreshold {
			return Decision{Action: domain.ActionCreateNew}
		}
		return Decision{Action: domain.ActionContentExpansion}
	}
}
