package core

import "chemcore/pkg/domain"

type (
	EntityType         = domain.EntityType
	Severity           = domain.Severity
	Base               = domain.Base
	ChemicalRecord     = domain.ChemicalRecord
	SafetyDataSheet    = domain.SafetyDataSheet
	Change             = domain.Change
	Action             = domain.Action
	ChangeListener     = domain.ChangeListener
	Violation          = domain.Violation
	Result             = domain.Result
	Rule               = domain.Rule
	RulesEngine        = domain.RulesEngine
	RuleViolationError = domain.RuleViolationError
)

const (
	EntityChemical    = domain.EntityChemical
	EntitySDSDocument = domain.EntitySDSDocument
)

const (
	SeverityBlock = domain.SeverityBlock
	SeverityWarn  = domain.SeverityWarn
	SeverityLog   = domain.SeverityLog
)

const (
	ActionCreate = domain.ActionCreate
	ActionDelete = domain.ActionDelete
)
