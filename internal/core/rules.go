package core

import "chemcore/pkg/domain"

// NewDefaultRulesEngine builds a rules engine with the built-in policy set.
// All built-in rules report at warn severity: the inventory's documented
// invariants are advisory, so no default rule ever blocks a commit.
func NewDefaultRulesEngine() *RulesEngine {
	engine := domain.NewRulesEngine()
	engine.Register(NewDuplicateIdentifierRule())
	engine.Register(NewKnownCategoryRule())
	engine.Register(NewSDSCompletenessRule())
	return engine
}
