package model

// Stage is the procedural point a claim has reached in the debt-recovery
// lifecycle: initial -> pre_lba -> lba_sent -> lba_expired -> court_filed ->
// defense_filed -> enforcement
type Stage string

const (
	StageInitial      Stage = "initial"
	StagePreLBA       Stage = "pre_lba"
	StageLBASent      Stage = "lba_sent"
	StageLBAExpired   Stage = "lba_expired"
	StageCourtFiled   Stage = "court_filed"
	StageDefenseFiled Stage = "defense_filed"
	StageEnforcement  Stage = "enforcement" // Judgment entered; terminal for this machine
)

// DocumentType identifies a procedural document the claimant can produce
type DocumentType string

const (
	DocPoliteReminder          DocumentType = "polite_reminder"
	DocLetterBeforeAction      DocumentType = "letter_before_action"
	DocClaimForm               DocumentType = "claim_form"
	DocDirectionsQuestionnaire DocumentType = "directions_questionnaire"
	DocDefaultJudgment         DocumentType = "default_judgment_request"
	DocSettlementOffer         DocumentType = "settlement_offer"
)

// Severity indicates how serious an advisory condition is
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// WarningType classifies an advisory condition
type WarningType string

const (
	WarningCountyMissing     WarningType = "county_missing"
	WarningForeignCurrency   WarningType = "foreign_currency"
	WarningSmallClaimsLimit  WarningType = "small_claims_limit"
	WarningLimitationPeriod  WarningType = "limitation_period"
	WarningLBAMissing        WarningType = "lba_missing"
	WarningLBAWaitingPeriod  WarningType = "lba_waiting_period"
	WarningPrematureFiling   WarningType = "premature_filing"
	WarningLegalAdvice       WarningType = "legal_advice"
	WarningRepresentation    WarningType = "representation"
	WarningEnforcementSteps  WarningType = "enforcement_steps"
)

// Warning is an advisory condition derived from the merged record. Warnings
// never block merging or recommendation.
type Warning struct {
	Type     WarningType `json:"type"`
	Message  string      `json:"message"`
	Severity Severity    `json:"severity"`
}

// Alternative is a ranked secondary document suggestion
type Alternative struct {
	Document DocumentType `json:"document"`
	Reason   string       `json:"reason"`
}

// Recommendation is the derived output of the stage classifier. It is
// recomputed from the claim record on demand, never stored.
type Recommendation struct {
	Stage           Stage         `json:"stage"`
	Urgency         int           `json:"urgency"` // 1-5
	PrimaryDocument DocumentType  `json:"primary_document"`
	Reason          string        `json:"reason"`
	Alternatives    []Alternative `json:"alternatives,omitempty"`
	Warnings        []Warning     `json:"warnings,omitempty"`
}
