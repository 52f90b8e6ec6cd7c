package model

import "time"

// Domain constants for England & Wales debt recovery
const (
	// DomesticCurrency is the currency all rate and threshold logic assumes
	DomesticCurrency = "GBP"

	// SmallClaimsLimit is the small claims track monetary threshold
	SmallClaimsLimit = 10000.0

	// LBAWaitingPeriod is the statutory waiting period after a letter before
	// action before court filing is appropriate
	LBAWaitingPeriod = 14 * 24 * time.Hour

	// LimitationPeriodYears is the statute-of-limitations horizon for simple
	// contract debts
	LimitationPeriodYears = 6

	// DefaultVerificationThreshold is the confidence below which a field
	// should be confirmed with the claimant before relying on it
	DefaultVerificationThreshold = 70
)
