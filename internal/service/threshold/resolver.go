package threshold

import (
	"github.com/erphive/attendance-planner/internal/domain"
)

// Resolver answers the effective minimum-attendance threshold for a
// subject: the per-subject override when one exists, otherwise the global
// default.
type Resolver struct {
	config domain.ThresholdConfig
}

func NewResolver(config domain.ThresholdConfig) *Resolver {
	return &Resolver{config: config}
}

func (r *Resolver) Effective(subjectKey string) int {
	if override, ok := r.config.Overrides[subjectKey]; ok {
		return override
	}
	return r.config.Global
}

func (r *Resolver) EffectiveFor(subject domain.Subject) int {
	return r.Effective(subject.Key())
}

func (r *Resolver) Global() int {
	return r.config.Global
}
