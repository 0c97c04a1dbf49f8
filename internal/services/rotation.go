package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/agrofield/agrofield-backend/internal/apierr"
	"github.com/agrofield/agrofield-backend/internal/logger"
	"github.com/agrofield/agrofield-backend/internal/repos"
	"github.com/agrofield/agrofield-backend/internal/requestdata"
	"github.com/agrofield/agrofield-backend/internal/types"
)

const defaultRecommendationLimit = 5

// CropRecommendation is one scored, ranked candidate returned by the
// generator, mirroring the persisted record.
type CropRecommendation struct {
	RecommendationID   uuid.UUID `json:"recommendation_id"`
	CropID             uuid.UUID `json:"crop_id"`
	CropName           string    `json:"crop_name"`
	FamilyName         string    `json:"family_name"`
	Score              int       `json:"score"`
	Compatibility      string    `json:"compatibility"`
	Reasons            []string  `json:"reasons"`
	RotationInterval   int       `json:"rotation_interval"`
	SoilAdaptation     bool      `json:"soil_adaptation"`
	RotationCompliance bool      `json:"rotation_compliance"`
}

type RotationHistoryEntry struct {
	Year         int        `json:"year"`
	CropName     string     `json:"crop_name"`
	FamilyName   string     `json:"crop_family"`
	YieldAmount  *float64   `json:"yield_amount,omitempty"`
	YieldQuality string     `json:"yield_quality,omitempty"`
	PlantingDate time.Time  `json:"planting_date"`
	HarvestDate  *time.Time `json:"harvest_date,omitempty"`
}

type CompatibilityEntry struct {
	CropID   uuid.UUID `json:"crop_id"`
	CropName string    `json:"crop_name"`
	Reason   string    `json:"reason"`
}

type CropCompatibility struct {
	CropID           uuid.UUID            `json:"crop_id"`
	CropName         string               `json:"crop_name"`
	GoodFollowers    []CompatibilityEntry `json:"good_followers"`
	BadFollowers     []CompatibilityEntry `json:"bad_followers"`
	GoodPredecessors []CompatibilityEntry `json:"good_predecessors"`
}

type SoilAnalysis struct {
	FieldID         uuid.UUID               `json:"field_id"`
	FieldName       string                  `json:"field_name"`
	SoilData        *types.FieldSoilProfile `json:"soil_data"`
	PHStatus        string                  `json:"ph_status,omitempty"`
	OrganicStatus   string                  `json:"organic_status,omitempty"`
	Recommendations []string                `json:"recommendations,omitempty"`
}

type AppliedRecommendation struct {
	RecommendationID uuid.UUID `json:"recommendation_id"`
	FieldName        string    `json:"field_name"`
	CropName         string    `json:"crop_name"`
	TargetYear       int       `json:"target_year"`
	AgroScore        int       `json:"agro_score"`
	AppliedDate      time.Time `json:"applied_date"`
	Reasons          []string  `json:"reasons"`
}

type RotationService interface {
	GenerateRecommendations(ctx context.Context, fieldID uuid.UUID, targetYear, limit int) ([]*CropRecommendation, error)
	ListRecommendations(ctx context.Context, fieldID uuid.UUID, targetYear int) ([]*CropRecommendation, error)
	ApplyRecommendation(ctx context.Context, fieldID, recommendationID uuid.UUID) (*types.Planting, error)
	GetFieldRotationHistory(ctx context.Context, fieldID uuid.UUID, yearsBack int) ([]*RotationHistoryEntry, error)
	GetCropCompatibility(ctx context.Context, cropID uuid.UUID) (*CropCompatibility, error)
	GetSoilAnalysis(ctx context.Context, fieldID uuid.UUID) (*SoilAnalysis, error)
	ListAppliedRecommendations(ctx context.Context) ([]*AppliedRecommendation, error)
}

type rotationService struct {
	db           *gorm.DB
	log          *logger.Logger
	fieldRepo    repos.FieldRepo
	cropRepo     repos.CropRepo
	ruleRepo     repos.CropRotationRuleRepo
	plantingRepo repos.PlantingRepo
	soilRepo     repos.FieldSoilProfileRepo
	seasonRepo   repos.SeasonRepo
	recRepo      repos.RotationRecommendationRepo
}

func NewRotationService(
	db *gorm.DB,
	baseLog *logger.Logger,
	fieldRepo repos.FieldRepo,
	cropRepo repos.CropRepo,
	ruleRepo repos.CropRotationRuleRepo,
	plantingRepo repos.PlantingRepo,
	soilRepo repos.FieldSoilProfileRepo,
	seasonRepo repos.SeasonRepo,
	recRepo repos.RotationRecommendationRepo,
) RotationService {
	serviceLog := baseLog.With("service", "RotationService")
	return &rotationService{
		db:           db,
		log:          serviceLog,
		fieldRepo:    fieldRepo,
		cropRepo:     cropRepo,
		ruleRepo:     ruleRepo,
		plantingRepo: plantingRepo,
		soilRepo:     soilRepo,
		seasonRepo:   seasonRepo,
		recRepo:      recRepo,
	}
}

// GenerateRecommendations scores every crop in the catalog for the
// field and target year, ranks the candidates, and replaces the stored
// recommendation set for (field, year) with the top results. The
// delete-then-insert runs in one transaction so concurrent regeneration
// cannot leave a partial set.
func (rs *rotationService) GenerateRecommendations(ctx context.Context, fieldID uuid.UUID, targetYear, limit int) ([]*CropRecommendation, error) {
	if targetYear <= 0 {
		return nil, apierr.Validation("invalid_target_year", fmt.Errorf("target year must be positive, got %d", targetYear))
	}
	if limit <= 0 {
		limit = defaultRecommendationLimit
	}

	var out []*CropRecommendation
	err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		field, err := rs.loadOwnedField(ctx, tx, fieldID)
		if err != nil {
			return err
		}

		history, err := rs.plantingRepo.GetRecentByFieldID(ctx, tx, field.ID, rotationHistoryWindow)
		if err != nil {
			return fmt.Errorf("load planting history: %w", err)
		}
		soil, err := rs.soilRepo.GetLatestByFieldID(ctx, tx, field.ID)
		if err != nil {
			return fmt.Errorf("load soil profile: %w", err)
		}
		catalog, err := rs.cropRepo.List(ctx, tx)
		if err != nil {
			return fmt.Errorf("load crop catalog: %w", err)
		}

		var lastCrop *types.Crop
		if len(history) > 0 {
			lastCrop = history[0].Crop
		}

		candidates := make([]*CropRecommendation, 0, len(catalog))
		for _, crop := range catalog {
			var rule *types.CropRotationRule
			if lastCrop != nil {
				rule, err = rs.ruleRepo.GetByPair(ctx, tx, lastCrop.ID, crop.ID)
				if err != nil {
					return fmt.Errorf("load rotation rule: %w", err)
				}
			}
			score, reasons := scoreCandidate(crop, history, soil, rule, targetYear)
			candidates = append(candidates, &CropRecommendation{
				CropID:             crop.ID,
				CropName:           crop.Name,
				FamilyName:         familyName(crop),
				Score:              score,
				Compatibility:      compatibilityTier(score),
				Reasons:            reasons,
				RotationInterval:   crop.RotationInterval,
				SoilAdaptation:     mentionsSoil(reasons),
				RotationCompliance: score >= 70,
			})
		}

		// Score descending; ties broken by crop name, then id, so the
		// ranking is deterministic.
		sort.SliceStable(candidates, func(i, j int) bool {
			if candidates[i].Score != candidates[j].Score {
				return candidates[i].Score > candidates[j].Score
			}
			if candidates[i].CropName != candidates[j].CropName {
				return candidates[i].CropName < candidates[j].CropName
			}
			return candidates[i].CropID.String() < candidates[j].CropID.String()
		})
		if len(candidates) > limit {
			candidates = candidates[:limit]
		}

		if err := rs.recRepo.DeleteByFieldYear(ctx, tx, field.ID, targetYear); err != nil {
			return fmt.Errorf("delete stale recommendations: %w", err)
		}

		now := time.Now()
		records := make([]*types.RotationRecommendation, 0, len(candidates))
		for _, cand := range candidates {
			reasonsJSON, err := json.Marshal(cand.Reasons)
			if err != nil {
				return fmt.Errorf("encode reasons: %w", err)
			}
			rec := &types.RotationRecommendation{
				ID:                 uuid.New(),
				FieldID:            field.ID,
				CropID:             cand.CropID,
				TargetYear:         targetYear,
				AgroScore:          cand.Score,
				Compatibility:      cand.Compatibility,
				Reasons:            datatypes.JSON(reasonsJSON),
				SoilAdaptation:     cand.SoilAdaptation,
				RotationCompliance: cand.RotationCompliance,
				GeneratedAt:        now,
			}
			cand.RecommendationID = rec.ID
			records = append(records, rec)
		}
		if err := rs.recRepo.Create(ctx, tx, records); err != nil {
			return fmt.Errorf("persist recommendations: %w", err)
		}

		out = candidates
		return nil
	})
	if err != nil {
		return nil, err
	}
	rs.log.Info("Generated rotation recommendations", "field_id", fieldID, "target_year", targetYear, "count", len(out))
	return out, nil
}

func (rs *rotationService) ListRecommendations(ctx context.Context, fieldID uuid.UUID, targetYear int) ([]*CropRecommendation, error) {
	if _, err := rs.loadOwnedField(ctx, nil, fieldID); err != nil {
		return nil, err
	}
	records, err := rs.recRepo.ListByFieldYear(ctx, nil, fieldID, targetYear)
	if err != nil {
		return nil, fmt.Errorf("list recommendations: %w", err)
	}
	out := make([]*CropRecommendation, 0, len(records))
	for _, rec := range records {
		if rec.Crop == nil {
			return nil, apierr.Inconsistency("recommendation_crop_missing", fmt.Errorf("recommendation %s references a deleted crop", rec.ID))
		}
		out = append(out, &CropRecommendation{
			RecommendationID:   rec.ID,
			CropID:             rec.CropID,
			CropName:           rec.Crop.Name,
			FamilyName:         familyName(rec.Crop),
			Score:              rec.AgroScore,
			Compatibility:      rec.Compatibility,
			Reasons:            decodeReasons(rec.Reasons),
			RotationInterval:   rec.Crop.RotationInterval,
			SoilAdaptation:     rec.SoilAdaptation,
			RotationCompliance: rec.RotationCompliance,
		})
	}
	return out, nil
}

// ApplyRecommendation turns a stored recommendation into a planting
// dated to spring of the target year. Deliberately not idempotent: a
// second apply creates a second planting.
func (rs *rotationService) ApplyRecommendation(ctx context.Context, fieldID, recommendationID uuid.UUID) (*types.Planting, error) {
	var planting *types.Planting
	err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		field, err := rs.loadOwnedField(ctx, tx, fieldID)
		if err != nil {
			return err
		}
		rec, err := rs.recRepo.GetByID(ctx, tx, recommendationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierr.NotFound("recommendation_not_found", fmt.Errorf("recommendation %s does not exist", recommendationID))
			}
			return fmt.Errorf("load recommendation: %w", err)
		}
		if rec.FieldID != field.ID {
			return apierr.Validation("recommendation_field_mismatch", fmt.Errorf("recommendation %s does not belong to field %s", recommendationID, fieldID))
		}
		crop, err := rs.cropRepo.GetByID(ctx, tx, rec.CropID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierr.Inconsistency("recommendation_crop_missing", fmt.Errorf("recommendation %s references a deleted crop", recommendationID))
			}
			return fmt.Errorf("load crop: %w", err)
		}
		season, err := rs.seasonRepo.FindByYear(ctx, tx, rec.TargetYear)
		if err != nil {
			return fmt.Errorf("resolve season: %w", err)
		}
		if season == nil {
			return apierr.NotFound("season_not_found", fmt.Errorf("no season exists for year %d", rec.TargetYear))
		}

		now := time.Now()
		planting = &types.Planting{
			ID:           uuid.New(),
			FieldID:      field.ID,
			CropID:       crop.ID,
			SeasonID:     season.ID,
			PlantingDate: time.Date(rec.TargetYear, time.March, 1, 0, 0, 0, 0, time.UTC),
			Notes:        fmt.Sprintf("Planting created from recommendation %s", rec.ID),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := rs.plantingRepo.Create(ctx, tx, planting); err != nil {
			return fmt.Errorf("create planting: %w", err)
		}
		if err := rs.recRepo.MarkApplied(ctx, tx, rec.ID); err != nil {
			return fmt.Errorf("mark recommendation applied: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	rs.log.Info("Applied rotation recommendation", "field_id", fieldID, "recommendation_id", recommendationID, "planting_id", planting.ID)
	return planting, nil
}

func (rs *rotationService) GetFieldRotationHistory(ctx context.Context, fieldID uuid.UUID, yearsBack int) ([]*RotationHistoryEntry, error) {
	if yearsBack <= 0 {
		yearsBack = 5
	}
	if _, err := rs.loadOwnedField(ctx, nil, fieldID); err != nil {
		return nil, err
	}
	cutoff := time.Date(time.Now().Year()-yearsBack, time.January, 1, 0, 0, 0, 0, time.UTC)
	plantings, err := rs.plantingRepo.ListByFieldSince(ctx, nil, fieldID, cutoff)
	if err != nil {
		return nil, fmt.Errorf("load rotation history: %w", err)
	}
	out := make([]*RotationHistoryEntry, 0, len(plantings))
	for _, planting := range plantings {
		if planting.Crop == nil {
			return nil, apierr.Inconsistency("planting_crop_missing", fmt.Errorf("planting %s references a deleted crop", planting.ID))
		}
		year := planting.PlantingDate.Year()
		if planting.Season != nil {
			year = planting.Season.Year()
		}
		out = append(out, &RotationHistoryEntry{
			Year:         year,
			CropName:     planting.Crop.Name,
			FamilyName:   familyName(planting.Crop),
			YieldAmount:  planting.YieldAmount,
			YieldQuality: planting.YieldQuality,
			PlantingDate: planting.PlantingDate,
			HarvestDate:  planting.HarvestDate,
		})
	}
	return out, nil
}

func (rs *rotationService) GetCropCompatibility(ctx context.Context, cropID uuid.UUID) (*CropCompatibility, error) {
	crop, err := rs.cropRepo.GetByID(ctx, nil, cropID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("crop_not_found", fmt.Errorf("crop %s does not exist", cropID))
		}
		return nil, fmt.Errorf("load crop: %w", err)
	}
	followerRules, err := rs.ruleRepo.ListByPreviousCropID(ctx, nil, crop.ID)
	if err != nil {
		return nil, fmt.Errorf("load follower rules: %w", err)
	}
	predecessorRules, err := rs.ruleRepo.ListByNextCropID(ctx, nil, crop.ID)
	if err != nil {
		return nil, fmt.Errorf("load predecessor rules: %w", err)
	}

	out := &CropCompatibility{
		CropID:           crop.ID,
		CropName:         crop.Name,
		GoodFollowers:    []CompatibilityEntry{},
		BadFollowers:     []CompatibilityEntry{},
		GoodPredecessors: []CompatibilityEntry{},
	}
	for _, rule := range followerRules {
		if rule.NextCrop == nil {
			continue
		}
		entry := CompatibilityEntry{CropID: rule.NextCropID, CropName: rule.NextCrop.Name, Reason: rule.Description}
		switch rule.Compatibility {
		case types.CompatGood:
			out.GoodFollowers = append(out.GoodFollowers, entry)
		case types.CompatBad:
			out.BadFollowers = append(out.BadFollowers, entry)
		}
	}
	for _, rule := range predecessorRules {
		if rule.PreviousCrop == nil || rule.Compatibility != types.CompatGood {
			continue
		}
		out.GoodPredecessors = append(out.GoodPredecessors, CompatibilityEntry{
			CropID:   rule.PreviousCropID,
			CropName: rule.PreviousCrop.Name,
			Reason:   rule.Description,
		})
	}
	return out, nil
}

func (rs *rotationService) GetSoilAnalysis(ctx context.Context, fieldID uuid.UUID) (*SoilAnalysis, error) {
	field, err := rs.loadOwnedField(ctx, nil, fieldID)
	if err != nil {
		return nil, err
	}
	profile, err := rs.soilRepo.GetLatestByFieldID(ctx, nil, field.ID)
	if err != nil {
		return nil, fmt.Errorf("load soil profile: %w", err)
	}
	out := &SoilAnalysis{FieldID: field.ID, FieldName: field.Name, SoilData: profile}
	if profile == nil {
		return out, nil
	}

	out.PHStatus = "neutral"
	out.OrganicStatus = "medium"
	out.Recommendations = []string{}
	if profile.PH != nil {
		if *profile.PH < 5.5 {
			out.PHStatus = "acidic"
			out.Recommendations = append(out.Recommendations, "liming recommended")
		} else if *profile.PH > 7.5 {
			out.PHStatus = "alkaline"
			out.Recommendations = append(out.Recommendations, "gypsum application recommended")
		}
	}
	if profile.OrganicMatter != nil {
		if *profile.OrganicMatter < 2.0 {
			out.OrganicStatus = "low"
			out.Recommendations = append(out.Recommendations, "organic fertilizer recommended")
		} else if *profile.OrganicMatter > 4.0 {
			out.OrganicStatus = "high"
		}
	}
	return out, nil
}

func (rs *rotationService) ListAppliedRecommendations(ctx context.Context) ([]*AppliedRecommendation, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.Validation("missing_request_data", errors.New("request data not set in context"))
	}
	records, err := rs.recRepo.ListAppliedByOwnerID(ctx, nil, rd.UserID)
	if err != nil {
		return nil, fmt.Errorf("list applied recommendations: %w", err)
	}
	out := make([]*AppliedRecommendation, 0, len(records))
	for _, rec := range records {
		if rec.Crop == nil || rec.Field == nil {
			return nil, apierr.Inconsistency("recommendation_reference_missing", fmt.Errorf("recommendation %s references deleted data", rec.ID))
		}
		out = append(out, &AppliedRecommendation{
			RecommendationID: rec.ID,
			FieldName:        rec.Field.Name,
			CropName:         rec.Crop.Name,
			TargetYear:       rec.TargetYear,
			AgroScore:        rec.AgroScore,
			AppliedDate:      rec.GeneratedAt,
			Reasons:          decodeReasons(rec.Reasons),
		})
	}
	return out, nil
}

// loadOwnedField resolves a field and enforces that it belongs to the
// authenticated user. A foreign field is reported as not found.
func (rs *rotationService) loadOwnedField(ctx context.Context, tx *gorm.DB, fieldID uuid.UUID) (*types.Field, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.Validation("missing_request_data", errors.New("request data not set in context"))
	}
	field, err := rs.fieldRepo.GetByID(ctx, tx, fieldID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("field_not_found", fmt.Errorf("field %s does not exist", fieldID))
		}
		return nil, fmt.Errorf("load field: %w", err)
	}
	if field.OwnerID != rd.UserID {
		return nil, apierr.NotFound("field_not_found", fmt.Errorf("field %s does not belong to the current user", fieldID))
	}
	return field, nil
}

func mentionsSoil(reasons []string) bool {
	for _, reason := range reasons {
		if strings.Contains(reason, "soil") {
			return true
		}
	}
	return false
}

func decodeReasons(raw datatypes.JSON) []string {
	var reasons []string
	if len(raw) == 0 {
		return []string{}
	}
	if err := json.Unmarshal(raw, &reasons); err != nil {
		return []string{}
	}
	return reasons
}
