package main

import (
	"context"
	"log"
	"time"

	"cropcare/config"
	"cropcare/database"
	"cropcare/entities"

	"cropcare/pkg/agronomy"
	"cropcare/pkg/notify"
	"cropcare/pkg/weather"

	advisorSvc "cropcare/pkg/advisor/serviceImp"
	cropRepoImp "cropcare/pkg/crop/repositoryImp"
	farmRepoImp "cropcare/pkg/farm/repositoryImp"
	irrigSvc "cropcare/pkg/irrigation/serviceImp"
	activityRepoImp "cropcare/pkg/schedule/repositoryImp"
	schedSvc "cropcare/pkg/schedule/serviceImp"
)

func main() {
	// 1) Config
	cfg := config.Load()

	// 2) DB (sqlite) + automigrate
	db := database.OpenSQLite(cfg.DBPath)

	// 3) Agronomy tables (defaults, optionally overlaid from files)
	tables, err := agronomy.LoadFromFiles(cfg.StageCSV, cfg.TemplateCSV, cfg.StageXLSX)
	if err != nil {
		log.Fatalf("agronomy tables: %v", err)
	}
	resolver := agronomy.NewResolver(tables)

	// 4) Weather (mock fallback)
	var wc weather.Client
	if cfg.OpenWeatherKey != "" {
		wc = weather.NewOWMClient(cfg.OpenWeatherKey, time.Duration(cfg.WeatherTimeoutMs)*time.Millisecond)
	} else {
		log.Printf("[main] no OpenWeather key, using mock weather")
		wc = weather.NewMock()
	}
	analyzer := weather.NewAnalyzer(wc, time.Duration(cfg.WeatherTimeoutMs)*time.Millisecond)

	// 5) Notifier (MQTT when a broker is configured)
	var notifier notify.Notifier
	if cfg.MQTTBrokerURL != "" {
		mq, err := notify.NewMQTTNotifier(cfg.MQTTBrokerURL, cfg.MQTTClientID, cfg.MQTTTopicTmpl)
		if err != nil {
			log.Fatalf("mqtt connect: %v", err)
		}
		defer mq.Close()
		notifier = mq
	} else {
		notifier = notify.NewLogNotifier()
	}

	// 6) Repos + services
	farms := farmRepoImp.New(db)
	crops := cropRepoImp.New(db)
	activities := activityRepoImp.New(db)

	irrigation := irrigSvc.New(resolver, analyzer, activities, farms)
	scheduler := schedSvc.New(resolver, activities)
	advisor := advisorSvc.New(farms, crops, irrigation, notifier)

	// 7) One advisory cycle
	ctx := context.Background()

	farmList, err := farms.All()
	if err != nil {
		log.Fatalf("list farms: %v", err)
	}
	for i := range farmList {
		farm := &farmList[i]

		active, err := crops.ActiveByFarm(farm.FarmID)
		if err != nil {
			log.Printf("[main] crops for farm %d: %v", farm.FarmID, err)
			continue
		}
		for j := range active {
			created, err := scheduler.CreateFromTemplate(&active[j])
			if err != nil {
				log.Printf("[main] template schedule crop %d: %v", active[j].CropID, err)
				continue
			}
			if len(created) > 0 {
				log.Printf("[main] crop %d: %d template activities created", active[j].CropID, len(created))
			}
		}

		recs, err := advisor.FarmSchedule(ctx, farm)
		if err != nil {
			log.Printf("[main] farm %d schedule: %v", farm.FarmID, err)
			continue
		}
		for _, r := range recs {
			log.Printf("[main] farm %d crop %d (%s/%s): %s priority=%s water=%.1fmm key=%s",
				farm.FarmID, r.Crop.CropID, r.Crop.CropType, r.Recommendation.GrowthStage,
				r.Recommendation.Action, r.Recommendation.Priority,
				r.Recommendation.WaterAmountMM, r.Recommendation.MessageKey)
		}
	}

	// 8) Auto-schedule urgent irrigations, per user or for everyone
	users := map[string]bool{}
	if cfg.AdviseUser != "" {
		users[cfg.AdviseUser] = true
	} else {
		for i := range farmList {
			users[farmList[i].UserID] = true
		}
	}
	total := 0
	for u := range users {
		n, err := advisor.ScheduleAllUrgent(ctx, u)
		if err != nil {
			log.Printf("[main] schedule urgent for %s: %v", u, err)
			continue
		}
		total += n
	}
	log.Printf("[main] advisory cycle done: %d urgent irrigations scheduled as of %s",
		total, entities.Midnight(time.Now()).Format("2006-01-02"))
}
