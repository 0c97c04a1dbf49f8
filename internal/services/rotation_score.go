package services

import (
	"fmt"

	"github.com/agrofield/agrofield-backend/internal/types"
)

// rotationHistoryWindow bounds how many plantings feed a scoring run.
const rotationHistoryWindow = 10

// typeRepetitionWindow bounds the crop-type repetition check.
const typeRepetitionWindow = 3

const reasonSoilDataUnavailable = "soil data unavailable"

// PlantingHistory is a field's plantings ordered newest first and
// limited to rotationHistoryWindow entries. Callers own the ordering
// and the limit; the scorer never re-sorts.
type PlantingHistory []*types.Planting

// scoreCandidate rates one candidate crop for a field and target year.
// It starts at 100, evaluates every rule independently, appends one
// reason per fired rule in rule order, and clamps the result at zero.
// predecessorRule is the compatibility rule for (most recent crop ->
// candidate), or nil when none is known. Pure: safe for concurrent use.
func scoreCandidate(candidate *types.Crop, history PlantingHistory, soil *types.FieldSoilProfile, predecessorRule *types.CropRotationRule, targetYear int) (int, []string) {
	score := 100
	reasons := []string{}

	// Rule 1: rotation interval for this exact crop. Silent when the
	// candidate never appears in history.
	lastPlantingYear := 0
	for _, planting := range history {
		if planting.CropID == candidate.ID {
			lastPlantingYear = planting.PlantingDate.Year()
			break
		}
	}
	if lastPlantingYear != 0 {
		yearsSince := targetYear - lastPlantingYear
		minInterval := candidate.RotationInterval
		if yearsSince < minInterval {
			score -= (minInterval - yearsSince) * 15
			reasons = append(reasons, fmt.Sprintf("rotation interval violated: %d years since last planting instead of %d", yearsSince, minInterval))
		} else {
			reasons = append(reasons, fmt.Sprintf("rotation interval satisfied: %d years since last planting", yearsSince))
		}
	}

	if len(history) > 0 {
		lastCrop := history[0].Crop

		// Rule 2: predecessor compatibility rule. Neutral or absent rules
		// change nothing.
		if predecessorRule != nil && lastCrop != nil {
			switch predecessorRule.Compatibility {
			case types.CompatGood:
				score += 20
				reasons = append(reasons, fmt.Sprintf("good predecessor: %s", lastCrop.Name))
			case types.CompatBad:
				score -= 30
				reasons = append(reasons, fmt.Sprintf("bad predecessor: %s", lastCrop.Name))
			}
		}

		// Rule 3: same botanical family as the most recent crop. Fires
		// independently of rule 2.
		if lastCrop != nil && lastCrop.FamilyID == candidate.FamilyID {
			reasons = append(reasons, fmt.Sprintf("same family as predecessor: %s", familyName(candidate)))
			score -= 25
		}
	}

	if soil != nil {
		// Rule 4: pH preference against the measured pH.
		if soil.PH != nil {
			switch {
			case candidate.PreferredPH == types.PHAcidic && *soil.PH >= 6.5:
				score -= 20
				reasons = append(reasons, "crop prefers acidic soil")
			case candidate.PreferredPH == types.PHAlkaline && *soil.PH <= 6.5:
				score -= 20
				reasons = append(reasons, "crop prefers alkaline soil")
			}
		}

		// Rule 5: high nutrient demand on poor soil.
		if soil.OrganicMatter != nil && candidate.NutrientDemand == types.DemandHigh && *soil.OrganicMatter < 2.5 {
			score -= 15
			reasons = append(reasons, "high nutrient demand on soil low in organic matter")
		}
	} else {
		// Rule 6: informational only, no score change.
		reasons = append(reasons, reasonSoilDataUnavailable)
	}

	// Rule 7: crop type repeated among the 3 most recent plantings.
	if candidate.CropType != "" {
		recent := history
		if len(recent) > typeRepetitionWindow {
			recent = recent[:typeRepetitionWindow]
		}
		for _, planting := range recent {
			if planting.Crop != nil && planting.Crop.CropType == candidate.CropType {
				score -= 10
				reasons = append(reasons, "crop type repeated in recent plantings")
				break
			}
		}
	}

	if score < 0 {
		score = 0
	}
	return score, reasons
}

// compatibilityTier maps an agro-score to its qualitative tier.
func compatibilityTier(score int) string {
	switch {
	case score >= 90:
		return types.TierExcellent
	case score >= 70:
		return types.TierGood
	case score >= 50:
		return types.TierFair
	default:
		return types.TierPoor
	}
}

func familyName(crop *types.Crop) string {
	if crop.Family != nil {
		return crop.Family.Name
	}
	return "unknown"
}
