package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/agrofield/agrofield-backend/internal/types"
)

type seedCrop struct {
	name        string
	latinName   string
	family      string
	cropType    string
	nutrient    string
	water       string
	diseaseRisk string
	preferredPH string
	interval    int
}

type seedRule struct {
	prev   string
	next   string
	compat string
	desc   string
}

// SeedReferenceData loads the crop catalog, plant families and rotation
// rules. It is a no-op when families are already present.
func SeedReferenceData(db *gorm.DB) error {
	var familyCount int64
	if err := db.Model(&types.PlantFamily{}).Count(&familyCount).Error; err != nil {
		return fmt.Errorf("count plant families: %w", err)
	}
	if familyCount > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		familyDefs := []types.PlantFamily{
			{Name: "Nightshades", LatinName: "Solanaceae", Description: "Tomatoes, peppers, eggplants, potatoes"},
			{Name: "Gourds", LatinName: "Cucurbitaceae", Description: "Cucumbers, zucchini, pumpkins, melons"},
			{Name: "Brassicas", LatinName: "Brassicaceae", Description: "Cabbage, radish, mustard, rapeseed"},
			{Name: "Legumes", LatinName: "Fabaceae", Description: "Peas, beans, alfalfa, lentils"},
			{Name: "Umbellifers", LatinName: "Apiaceae", Description: "Carrots, parsley, celery, dill"},
			{Name: "Amaranths", LatinName: "Amaranthaceae", Description: "Beets, spinach, chard"},
			{Name: "Alliums", LatinName: "Amaryllidaceae", Description: "Onions, garlic, leeks"},
			{Name: "Asters", LatinName: "Asteraceae", Description: "Lettuce, sunflower, artichoke"},
			{Name: "Grasses", LatinName: "Poaceae", Description: "Wheat, rye, oats, barley, corn"},
		}
		families := make(map[string]*types.PlantFamily, len(familyDefs))
		now := time.Now()
		for i := range familyDefs {
			familyDefs[i].ID = uuid.New()
			families[familyDefs[i].Name] = &familyDefs[i]
		}
		if err := tx.Create(&familyDefs).Error; err != nil {
			return fmt.Errorf("seed plant families: %w", err)
		}

		cropDefs := []seedCrop{
			{"Tomato", "Solanum lycopersicum", "Nightshades", types.CropTypeVegetable, types.DemandHigh, types.DemandMedium, "high", types.PHNeutral, 3},
			{"Potato", "Solanum tuberosum", "Nightshades", types.CropTypeRoot, types.DemandHigh, types.DemandMedium, "high", types.PHAcidic, 4},
			{"Pepper", "Capsicum annuum", "Nightshades", types.CropTypeVegetable, types.DemandHigh, types.DemandMedium, "medium", types.PHNeutral, 3},
			{"Eggplant", "Solanum melongena", "Nightshades", types.CropTypeVegetable, types.DemandHigh, types.DemandMedium, "medium", types.PHNeutral, 3},
			{"Cucumber", "Cucumis sativus", "Gourds", types.CropTypeVegetable, types.DemandHigh, types.DemandHigh, "medium", types.PHNeutral, 2},
			{"Zucchini", "Cucurbita pepo", "Gourds", types.CropTypeVegetable, types.DemandMedium, types.DemandMedium, "low", types.PHNeutral, 2},
			{"Pumpkin", "Cucurbita maxima", "Gourds", types.CropTypeVegetable, types.DemandMedium, types.DemandMedium, "low", types.PHNeutral, 3},
			{"Cabbage", "Brassica oleracea", "Brassicas", types.CropTypeVegetable, types.DemandHigh, types.DemandHigh, "medium", types.PHNeutral, 4},
			{"Radish", "Raphanus sativus", "Brassicas", types.CropTypeRoot, types.DemandLow, types.DemandMedium, "low", types.PHNeutral, 2},
			{"Rapeseed", "Brassica napus", "Brassicas", types.CropTypeTechnical, types.DemandMedium, types.DemandMedium, "medium", types.PHNeutral, 4},
			{"Pea", "Pisum sativum", "Legumes", types.CropTypeLegume, types.DemandLow, types.DemandMedium, "low", types.PHNeutral, 2},
			{"Bean", "Phaseolus vulgaris", "Legumes", types.CropTypeLegume, types.DemandLow, types.DemandMedium, "low", types.PHNeutral, 2},
			{"Alfalfa", "Medicago sativa", "Legumes", types.CropTypeLegume, types.DemandLow, types.DemandLow, "low", types.PHNeutral, 3},
			{"Carrot", "Daucus carota", "Umbellifers", types.CropTypeRoot, types.DemandMedium, types.DemandMedium, "low", types.PHNeutral, 3},
			{"Parsley", "Petroselinum crispum", "Umbellifers", types.CropTypeVegetable, types.DemandMedium, types.DemandMedium, "low", types.PHNeutral, 2},
			{"Beet", "Beta vulgaris", "Amaranths", types.CropTypeRoot, types.DemandMedium, types.DemandMedium, "low", types.PHNeutral, 3},
			{"Onion", "Allium cepa", "Alliums", types.CropTypeVegetable, types.DemandLow, types.DemandMedium, "low", types.PHNeutral, 3},
			{"Garlic", "Allium sativum", "Alliums", types.CropTypeVegetable, types.DemandLow, types.DemandLow, "low", types.PHNeutral, 3},
			{"Wheat", "Triticum aestivum", "Grasses", types.CropTypeGrain, types.DemandMedium, types.DemandMedium, "medium", types.PHNeutral, 2},
			{"Corn", "Zea mays", "Grasses", types.CropTypeGrain, types.DemandHigh, types.DemandHigh, "medium", types.PHNeutral, 3},
			{"Barley", "Hordeum vulgare", "Grasses", types.CropTypeGrain, types.DemandMedium, types.DemandLow, "low", types.PHNeutral, 2},
			{"Sunflower", "Helianthus annuus", "Asters", types.CropTypeTechnical, types.DemandHigh, types.DemandMedium, "medium", types.PHNeutral, 5},
		}
		crops := make(map[string]*types.Crop, len(cropDefs))
		for _, def := range cropDefs {
			family, ok := families[def.family]
			if !ok {
				return fmt.Errorf("seed crop %q: unknown family %q", def.name, def.family)
			}
			crop := &types.Crop{
				ID:               uuid.New(),
				Name:             def.name,
				LatinName:        def.latinName,
				FamilyID:         family.ID,
				CropType:         def.cropType,
				NutrientDemand:   def.nutrient,
				WaterDemand:      def.water,
				DiseaseRisk:      def.diseaseRisk,
				PreferredPH:      def.preferredPH,
				RotationInterval: def.interval,
				CreatedAt:        now,
			}
			if err := tx.Create(crop).Error; err != nil {
				return fmt.Errorf("seed crop %q: %w", def.name, err)
			}
			crops[def.name] = crop
		}

		ruleDefs := []seedRule{
			{"Pea", "Tomato", types.CompatGood, "Legumes enrich the soil with nitrogen"},
			{"Bean", "Cucumber", types.CompatGood, "Legumes are a strong predecessor for gourds"},
			{"Alfalfa", "Wheat", types.CompatGood, "Perennial legumes improve soil structure"},
			{"Alfalfa", "Corn", types.CompatGood, "Green manure enriches the soil with organic matter"},
			{"Tomato", "Potato", types.CompatBad, "Same family, shared disease pressure"},
			{"Potato", "Tomato", types.CompatBad, "Same family, disease carryover"},
			{"Cabbage", "Radish", types.CompatBad, "Same family, shared pests"},
			{"Cabbage", "Cabbage", types.CompatBad, "Clubroot and other diseases accumulate"},
			{"Onion", "Carrot", types.CompatGood, "Onions repel the carrot fly"},
			{"Carrot", "Onion", types.CompatGood, "Mutually protective succession"},
			{"Potato", "Beet", types.CompatGood, "Different root systems"},
			{"Carrot", "Pea", types.CompatGood, "Root crops before legumes"},
			{"Wheat", "Beet", types.CompatGood, "Cereals leave good soil structure"},
			{"Barley", "Potato", types.CompatGood, "Cereals suppress weeds ahead of potatoes"},
			{"Sunflower", "Sunflower", types.CompatBad, "Severe soil depletion"},
			{"Corn", "Sunflower", types.CompatBad, "Both crops heavily deplete the soil"},
		}
		for _, def := range ruleDefs {
			prev, ok := crops[def.prev]
			if !ok {
				return fmt.Errorf("seed rule: unknown crop %q", def.prev)
			}
			next, ok := crops[def.next]
			if !ok {
				return fmt.Errorf("seed rule: unknown crop %q", def.next)
			}
			rule := &types.CropRotationRule{
				ID:             uuid.New(),
				PreviousCropID: prev.ID,
				NextCropID:     next.ID,
				Compatibility:  def.compat,
				Description:    def.desc,
				CreatedAt:      now,
			}
			if err := tx.Create(rule).Error; err != nil {
				return fmt.Errorf("seed rule %s -> %s: %w", def.prev, def.next, err)
			}
		}
		return nil
	})
}
