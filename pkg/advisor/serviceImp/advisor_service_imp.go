package serviceImp

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"cropcare/entities"
	"cropcare/pkg/advisor/service"
	"cropcare/pkg/advisor/types"
	croprepo "cropcare/pkg/crop/repository"
	farmrepo "cropcare/pkg/farm/repository"
	"cropcare/pkg/irrigation"
	irrigsvc "cropcare/pkg/irrigation/service"
	"cropcare/pkg/notify"
)

type advisorSvc struct {
	farms      farmrepo.FarmRepository
	crops      croprepo.CropRepository
	irrigation irrigsvc.IrrigationService
	notifier   notify.Notifier
	now        func() time.Time
}

func New(farms farmrepo.FarmRepository, crops croprepo.CropRepository,
	irrigation irrigsvc.IrrigationService, notifier notify.Notifier) service.AdvisorService {
	return &advisorSvc{
		farms:      farms,
		crops:      crops,
		irrigation: irrigation,
		notifier:   notifier,
		now:        time.Now,
	}
}

func (s *advisorSvc) FarmSchedule(ctx context.Context, farm *entities.Farm) ([]types.CropRecommendation, error) {
	crops, err := s.crops.ActiveByFarm(farm.FarmID)
	if err != nil {
		return nil, fmt.Errorf("farm schedule %d: %w", farm.FarmID, err)
	}
	out := make([]types.CropRecommendation, 0, len(crops))
	for i := range crops {
		rec := s.irrigation.RecommendForCrop(ctx, &crops[i], farm)
		if rec.GrowthStage != crops[i].CurrentStage {
			// refresh the cached stage; the recommendation is already correct
			if err := s.crops.UpdateStage(crops[i].CropID, rec.GrowthStage); err != nil {
				log.Printf("[advisor] stage cache update for crop %d: %v", crops[i].CropID, err)
			}
			crops[i].CurrentStage = rec.GrowthStage
		}
		out = append(out, types.CropRecommendation{
			Crop:           crops[i],
			FarmID:         farm.FarmID,
			Recommendation: rec,
		})
	}
	return out, nil
}

func (s *advisorSvc) UserSchedule(ctx context.Context, userID string) ([]types.CropRecommendation, error) {
	farms, err := s.farms.ByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("user schedule %s: %w", userID, err)
	}
	var merged []types.CropRecommendation
	for i := range farms {
		recs, err := s.FarmSchedule(ctx, &farms[i])
		if err != nil {
			return nil, err
		}
		merged = append(merged, recs...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return irrigation.PriorityRank(merged[i].Recommendation.Priority) <
			irrigation.PriorityRank(merged[j].Recommendation.Priority)
	})
	return merged, nil
}

func (s *advisorSvc) ScheduleAllUrgent(ctx context.Context, userID string) (int, error) {
	recs, err := s.UserSchedule(ctx, userID)
	if err != nil {
		return 0, err
	}
	today := entities.Midnight(s.now())
	scheduled := 0
	for _, r := range recs {
		rec := r.Recommendation
		if rec.Action != irrigation.ActionIrrigate {
			continue
		}
		if rec.Priority != irrigation.PriorityUrgent && rec.Priority != irrigation.PriorityHigh {
			continue
		}
		_, created, err := s.irrigation.ScheduleIrrigation(&r.Crop, rec.WaterAmountMM, today)
		if err != nil {
			log.Printf("[advisor] schedule irrigation for crop %d: %v", r.Crop.CropID, err)
			continue
		}
		if !created {
			// already on the books for today, dedupe contract held
			continue
		}
		scheduled++

		// fire-and-forget
		if err := s.notifier.Notify(ctx, notify.Request{
			Recipient:  userID,
			CropID:     r.Crop.CropID,
			MessageKey: rec.MessageKey,
			Params:     rec.Params,
		}); err != nil {
			log.Printf("[advisor] notify for crop %d: %v", r.Crop.CropID, err)
		}
	}
	return scheduled, nil
}
