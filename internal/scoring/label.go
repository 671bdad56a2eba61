package scoring

import "github.com/daymark-hq/daymark-go/internal/models"

// LabelState maps (CAI, AV) onto the discrete risk state. The cascade order
// is part of the contract: Surge Risk pre-empts everything else even when AV
// is low, and each later check only runs if every earlier one failed.
func LabelState(cai, av float64) models.RiskState {
	switch {
	case cai >= 85:
		return models.StateSurgeRisk
	case cai >= 70 && av >= 56:
		return models.StateHighRiskAccl
	case av >= 76:
		return models.StateMomentum
	case cai >= 55 || av >= 56:
		return models.StateBuilding
	default:
		return models.StateStable
	}
}
