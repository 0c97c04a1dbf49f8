package services

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/agrofield/agrofield-backend/internal/types"
)

func ptr(v float64) *float64 { return &v }

func testFamily(name string) *types.PlantFamily {
	return &types.PlantFamily{ID: uuid.New(), Name: name}
}

func testCrop(name string, family *types.PlantFamily, cropType string, interval int) *types.Crop {
	return &types.Crop{
		ID:               uuid.New(),
		Name:             name,
		FamilyID:         family.ID,
		Family:           family,
		CropType:         cropType,
		NutrientDemand:   types.DemandMedium,
		PreferredPH:      types.PHNeutral,
		RotationInterval: interval,
	}
}

func testPlanting(crop *types.Crop, year int) *types.Planting {
	return testPlantingAt(crop, year, time.May)
}

func testPlantingAt(crop *types.Crop, year int, month time.Month) *types.Planting {
	return &types.Planting{
		ID:           uuid.New(),
		CropID:       crop.ID,
		Crop:         crop,
		PlantingDate: time.Date(year, month, 10, 0, 0, 0, 0, time.UTC),
	}
}

func neutralSoil() *types.FieldSoilProfile {
	return &types.FieldSoilProfile{PH: ptr(7.0), OrganicMatter: ptr(3.0)}
}

func TestScoreCandidate_EmptyHistoryNoSoil(t *testing.T) {
	candidate := testCrop("Tomato", testFamily("Nightshades"), types.CropTypeVegetable, 3)

	score, reasons := scoreCandidate(candidate, nil, nil, nil, 2027)
	if score != 100 {
		t.Fatalf("expected score=100 got %d", score)
	}
	if len(reasons) != 1 || reasons[0] != "soil data unavailable" {
		t.Fatalf("unexpected reasons: %v", reasons)
	}
}

func TestScoreCandidate_IntervalViolation(t *testing.T) {
	grasses := testFamily("Grasses")
	nightshades := testFamily("Nightshades")
	legumes := testFamily("Legumes")
	wheat := testCrop("Wheat", grasses, types.CropTypeGrain, 2)
	tomato := testCrop("Tomato", nightshades, types.CropTypeVegetable, 3)
	pea := testCrop("Pea", legumes, types.CropTypeLegume, 3)
	bean := testCrop("Bean", legumes, types.CropTypeLegume, 3)

	// Three non-grain plantings keep the wheat entry outside the
	// type-repetition window so only the interval rule fires.
	history := PlantingHistory{
		testPlantingAt(tomato, 2026, time.June),
		testPlantingAt(pea, 2026, time.April),
		testPlantingAt(bean, 2025, time.September),
		testPlantingAt(wheat, 2025, time.May),
	}

	score, reasons := scoreCandidate(wheat, history, neutralSoil(), nil, 2026)
	if score != 85 {
		t.Fatalf("expected score=85 got %d", score)
	}
	if len(reasons) != 1 || reasons[0] != "rotation interval violated: 1 years since last planting instead of 2" {
		t.Fatalf("unexpected reasons: %v", reasons)
	}
}

func TestScoreCandidate_IntervalCompliance(t *testing.T) {
	grasses := testFamily("Grasses")
	nightshades := testFamily("Nightshades")
	legumes := testFamily("Legumes")
	wheat := testCrop("Wheat", grasses, types.CropTypeGrain, 2)
	tomato := testCrop("Tomato", nightshades, types.CropTypeVegetable, 3)
	pea := testCrop("Pea", legumes, types.CropTypeLegume, 3)
	bean := testCrop("Bean", legumes, types.CropTypeLegume, 3)

	history := PlantingHistory{
		testPlanting(tomato, 2026),
		testPlanting(pea, 2025),
		testPlanting(bean, 2024),
		testPlanting(wheat, 2023),
	}

	score, reasons := scoreCandidate(wheat, history, neutralSoil(), nil, 2026)
	if score != 100 {
		t.Fatalf("expected score=100 got %d", score)
	}
	if len(reasons) != 1 || reasons[0] != "rotation interval satisfied: 3 years since last planting" {
		t.Fatalf("unexpected reasons: %v", reasons)
	}
}

func TestScoreCandidate_GoodPredecessorBonus(t *testing.T) {
	legumes := testFamily("Legumes")
	nightshades := testFamily("Nightshades")
	pea := testCrop("Pea", legumes, types.CropTypeLegume, 3)
	tomato := testCrop("Tomato", nightshades, types.CropTypeVegetable, 3)

	history := PlantingHistory{testPlanting(pea, 2026)}
	rule := &types.CropRotationRule{
		PreviousCropID: pea.ID,
		NextCropID:     tomato.ID,
		Compatibility:  types.CompatGood,
	}

	score, reasons := scoreCandidate(tomato, history, neutralSoil(), rule, 2027)
	if score != 120 {
		t.Fatalf("expected score=120 got %d", score)
	}
	if len(reasons) != 1 || reasons[0] != "good predecessor: Pea" {
		t.Fatalf("unexpected reasons: %v", reasons)
	}
}

func TestScoreCandidate_BadRuleAndSameFamilyAreAdditive(t *testing.T) {
	nightshades := testFamily("Nightshades")
	tomato := testCrop("Tomato", nightshades, types.CropTypeVegetable, 3)
	potato := testCrop("Potato", nightshades, types.CropTypeRoot, 4)
	potato.PreferredPH = types.PHAcidic

	history := PlantingHistory{testPlanting(tomato, 2026)}
	rule := &types.CropRotationRule{
		PreviousCropID: tomato.ID,
		NextCropID:     potato.ID,
		Compatibility:  types.CompatBad,
	}
	soil := &types.FieldSoilProfile{PH: ptr(6.0), OrganicMatter: ptr(3.0)}

	score, reasons := scoreCandidate(potato, history, soil, rule, 2027)
	if score != 45 {
		t.Fatalf("expected score=45 got %d", score)
	}
	if len(reasons) != 2 {
		t.Fatalf("expected 2 reasons got %v", reasons)
	}
	if reasons[0] != "bad predecessor: Tomato" {
		t.Fatalf("unexpected first reason: %q", reasons[0])
	}
	if reasons[1] != "same family as predecessor: Nightshades" {
		t.Fatalf("unexpected second reason: %q", reasons[1])
	}
}

func TestScoreCandidate_NeutralRuleChangesNothing(t *testing.T) {
	legumes := testFamily("Legumes")
	grasses := testFamily("Grasses")
	pea := testCrop("Pea", legumes, types.CropTypeLegume, 3)
	wheat := testCrop("Wheat", grasses, types.CropTypeGrain, 2)

	history := PlantingHistory{testPlanting(pea, 2026)}
	rule := &types.CropRotationRule{
		PreviousCropID: pea.ID,
		NextCropID:     wheat.ID,
		Compatibility:  types.CompatNeutral,
	}

	score, reasons := scoreCandidate(wheat, history, neutralSoil(), rule, 2027)
	if score != 100 {
		t.Fatalf("expected score=100 got %d", score)
	}
	if len(reasons) != 0 {
		t.Fatalf("expected no reasons got %v", reasons)
	}
}

func TestScoreCandidate_SameFamilyWithoutRule(t *testing.T) {
	nightshades := testFamily("Nightshades")
	tomato := testCrop("Tomato", nightshades, types.CropTypeVegetable, 3)
	eggplant := testCrop("Eggplant", nightshades, types.CropTypeRoot, 3)

	history := PlantingHistory{testPlanting(tomato, 2026)}

	score, reasons := scoreCandidate(eggplant, history, neutralSoil(), nil, 2027)
	if score != 75 {
		t.Fatalf("expected score=75 got %d", score)
	}
	if len(reasons) != 1 || reasons[0] != "same family as predecessor: Nightshades" {
		t.Fatalf("unexpected reasons: %v", reasons)
	}
	if tier := compatibilityTier(score); tier != types.TierGood {
		t.Fatalf("expected tier=good got %q", tier)
	}
}

func TestScoreCandidate_PHPreferenceMismatch(t *testing.T) {
	heathers := testFamily("Heathers")
	blueberry := testCrop("Blueberry", heathers, "", 3)
	blueberry.PreferredPH = types.PHAcidic

	soil := &types.FieldSoilProfile{PH: ptr(7.2), OrganicMatter: ptr(3.0)}
	score, reasons := scoreCandidate(blueberry, nil, soil, nil, 2027)
	if score != 80 {
		t.Fatalf("expected score=80 got %d", score)
	}
	if len(reasons) != 1 || reasons[0] != "crop prefers acidic soil" {
		t.Fatalf("unexpected reasons: %v", reasons)
	}

	alkaline := testCrop("Barley", testFamily("Grasses"), "", 2)
	alkaline.PreferredPH = types.PHAlkaline
	soil = &types.FieldSoilProfile{PH: ptr(6.0), OrganicMatter: ptr(3.0)}
	score, reasons = scoreCandidate(alkaline, nil, soil, nil, 2027)
	if score != 80 {
		t.Fatalf("expected score=80 got %d", score)
	}
	if len(reasons) != 1 || reasons[0] != "crop prefers alkaline soil" {
		t.Fatalf("unexpected reasons: %v", reasons)
	}
}

func TestScoreCandidate_HighDemandOnPoorSoil(t *testing.T) {
	brassicas := testFamily("Brassicas")
	cabbage := testCrop("Cabbage", brassicas, "", 3)
	cabbage.NutrientDemand = types.DemandHigh

	soil := &types.FieldSoilProfile{PH: ptr(7.0), OrganicMatter: ptr(2.0)}
	score, reasons := scoreCandidate(cabbage, nil, soil, nil, 2027)
	if score != 85 {
		t.Fatalf("expected score=85 got %d", score)
	}
	if len(reasons) != 1 || reasons[0] != "high nutrient demand on soil low in organic matter" {
		t.Fatalf("unexpected reasons: %v", reasons)
	}
}

func TestScoreCandidate_TypeRepetitionWindowIsThree(t *testing.T) {
	grasses := testFamily("Grasses")
	nightshades := testFamily("Nightshades")
	legumes := testFamily("Legumes")
	wheat := testCrop("Wheat", grasses, types.CropTypeGrain, 2)
	rye := testCrop("Rye", grasses, types.CropTypeGrain, 2)
	tomato := testCrop("Tomato", nightshades, types.CropTypeVegetable, 3)
	pea := testCrop("Pea", legumes, types.CropTypeLegume, 3)
	bean := testCrop("Bean", legumes, types.CropTypeLegume, 3)

	// Grain only at position 4: outside the window, no penalty.
	history := PlantingHistory{
		testPlanting(tomato, 2026),
		testPlanting(pea, 2025),
		testPlanting(bean, 2024),
		testPlanting(rye, 2023),
	}
	score, _ := scoreCandidate(wheat, history, neutralSoil(), nil, 2027)
	if score != 100 {
		t.Fatalf("expected score=100 got %d", score)
	}

	// Grain twice inside the window: penalty fires once.
	history = PlantingHistory{
		testPlanting(tomato, 2026),
		testPlanting(rye, 2025),
		testPlanting(rye, 2024),
	}
	score, reasons := scoreCandidate(wheat, history, neutralSoil(), nil, 2027)
	if score != 90 {
		t.Fatalf("expected score=90 got %d", score)
	}
	count := 0
	for _, reason := range reasons {
		if reason == "crop type repeated in recent plantings" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected the repetition reason exactly once, got %v", reasons)
	}
}

func TestScoreCandidate_ClampsAtZero(t *testing.T) {
	nightshades := testFamily("Nightshades")
	tomato := testCrop("Tomato", nightshades, types.CropTypeVegetable, 3)
	potato := testCrop("Potato", nightshades, types.CropTypeRoot, 5)
	potato.PreferredPH = types.PHAcidic
	potato.NutrientDemand = types.DemandHigh
	sibling := testCrop("Pepper", nightshades, types.CropTypeRoot, 3)

	history := PlantingHistory{
		testPlanting(potato, 2026),
		testPlanting(sibling, 2025),
		testPlanting(tomato, 2024),
	}
	rule := &types.CropRotationRule{
		PreviousCropID: potato.ID,
		NextCropID:     potato.ID,
		Compatibility:  types.CompatBad,
	}
	soil := &types.FieldSoilProfile{PH: ptr(7.5), OrganicMatter: ptr(1.5)}

	score, _ := scoreCandidate(potato, history, soil, rule, 2027)
	if score != 0 {
		t.Fatalf("expected score=0 got %d", score)
	}
}

func TestScoreCandidate_MissingSoilIsInformational(t *testing.T) {
	legumes := testFamily("Legumes")
	grasses := testFamily("Grasses")
	pea := testCrop("Pea", legumes, types.CropTypeLegume, 3)
	wheat := testCrop("Wheat", grasses, types.CropTypeGrain, 2)
	wheat.NutrientDemand = types.DemandHigh
	wheat.PreferredPH = types.PHAcidic

	history := PlantingHistory{testPlanting(pea, 2026)}

	// Without soil data neither pH nor nutrient rules can fire.
	score, reasons := scoreCandidate(wheat, history, nil, nil, 2027)
	if score != 100 {
		t.Fatalf("expected score=100 got %d", score)
	}
	if len(reasons) != 1 || reasons[0] != "soil data unavailable" {
		t.Fatalf("unexpected reasons: %v", reasons)
	}
}

func TestCompatibilityTierBoundaries(t *testing.T) {
	cases := []struct {
		score int
		tier  string
	}{
		{100, types.TierExcellent},
		{90, types.TierExcellent},
		{89, types.TierGood},
		{70, types.TierGood},
		{69, types.TierFair},
		{50, types.TierFair},
		{49, types.TierPoor},
		{0, types.TierPoor},
	}
	for _, tc := range cases {
		if got := compatibilityTier(tc.score); got != tc.tier {
			t.Fatalf("score %d: expected tier %q got %q", tc.score, tc.tier, got)
		}
	}
}
