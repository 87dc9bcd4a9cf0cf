package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Timezone         string
	DBPath           string
	OpenWeatherKey   string
	WeatherTimeoutMs int
	MQTTBrokerURL    string
	MQTTClientID     string
	MQTTTopicTmpl    string
	StageCSV         string
	TemplateCSV      string
	StageXLSX        string
	AdviseUser       string
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	getInt := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	cfg := AppConfig{
		Timezone:         get("TZ", "Asia/Kolkata"),
		DBPath:           get("DB_PATH", "cropcare.db"),
		OpenWeatherKey:   get("OPENWEATHER_API_KEY", ""),
		WeatherTimeoutMs: getInt("WEATHER_TIMEOUT_MS", 10000),
		MQTTBrokerURL:    get("MQTT_BROKER_URL", ""),
		MQTTClientID:     get("MQTT_CLIENT_ID", "cropcare-advisor"),
		MQTTTopicTmpl:    get("MQTT_TOPIC_TMPL", ""),
		StageCSV:         get("STAGE_CSV", ""),
		TemplateCSV:      get("TEMPLATE_CSV", ""),
		StageXLSX:        get("STAGE_XLSX", ""),
		AdviseUser:       get("ADVISE_USER", ""),
	}
	log.Printf("[cfg] db=%s weather_timeout_ms=%d owm_key_set=%t mqtt=%q",
		cfg.DBPath, cfg.WeatherTimeoutMs, cfg.OpenWeatherKey != "", cfg.MQTTBrokerURL)
	return cfg
}
