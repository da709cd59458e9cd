// Package gate implements the data-quality gate (C2), threshold engine
// (C3), tail statistic (C4), detector cascade (C5) and verdict reducer (C6)
// of the performance-regression gating pipeline.
package gate

import (
	"gatekeeper/adapters/stats/primitives"
	domaingate "gatekeeper/domain/gate"
)

// Quality score penalty schedule, adopted from the original implementation's
// constants.py (see SPEC_FULL.md §12 "Quality score composition detail").
// Informational only: the score never drives a gating decision, the Issues
// set does (see domaingate.QualityReport.Admitted).
const (
	initialQualityScore  = 100.0
	penaltySampleTooFew  = 30.0
	penaltyHighCV        = 25.0
	penaltyManyOutliers  = 20.0

	qualityExcellentThreshold = 90.0
	qualityGoodThreshold      = 75.0
	qualityFairThreshold      = 60.0

	outlierPctIssue = 20.0
)

// AssessQuality computes the QualityReport for a single sample (C2 steps
// 1-4). It never returns an error for a well-formed Sample; the Issues set
// is how short-circuiting is communicated to the caller.
func AssessQuality(sample domaingate.Sample, cfg domaingate.Config) (domaingate.QualityReport, error) {
	n := len(sample)
	report := domaingate.QualityReport{N: n, QualityScore: initialQualityScore}

	if n < cfg.MinN {
		report.Issues = append(report.Issues, domaingate.IssueTooFewSamples)
		report.QualityScore -= penaltySampleTooFew
	}

	if err := sample.Validate(); err != nil {
		return domaingate.QualityReport{}, err
	}

	meanVal, err := meanOf(sample)
	if err != nil {
		return domaingate.QualityReport{}, err
	}
	report.Mean = meanVal

	cv, cvErr := primitives.CV(sample)
	if cvErr == nil {
		report.CVPct = cv
		if cv > cfg.CVMaxPct {
			report.Issues = append(report.Issues, domaingate.IssueHighCV)
			report.QualityScore -= penaltyHighCV
		}
	}

	outlierCount, _, _, oErr := primitives.IQROutliers(sample)
	if oErr == nil {
		report.OutlierCount = outlierCount
		if n > 0 && float64(outlierCount)/float64(n)*100.0 > outlierPctIssue {
			report.Issues = append(report.Issues, domaingate.IssueManyOutliers)
			report.QualityScore -= penaltyManyOutliers
		}
	}

	if report.QualityScore < 0 {
		report.QualityScore = 0
	}
	report.QualityTier = qualityTier(report.QualityScore)

	return report, err
}

func qualityTier(score float64) string {
	switch {
	case score >= qualityExcellentThreshold:
		return "excellent"
	case score >= qualityGoodThreshold:
		return "good"
	case score >= qualityFairThreshold:
		return "fair"
	default:
		return "poor"
	}
}

func meanOf(sample domaingate.Sample) (float64, error) {
	if len(sample) == 0 {
		return 0, domaingate.ErrEmptySample
	}
	sum := 0.0
	for _, v := range sample {
		sum += v
	}
	return sum / float64(len(sample)), nil
}
