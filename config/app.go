package config

import (
	"os"
	"strconv"
	"sync"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName string
	Port    string
	Env     string
	Debug   bool

	// Affiliate API credentials and locale defaults
	AffiliateBaseURL string
	AppKey           string
	AppSecret        string
	TrackingID       string
	ShipToCountry    string
	TargetCurrency   string
	TargetLanguage   string
	PageSize         int
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() {
	once.Do(func() {
		AppConfig = &Config{
			AppName: os.Getenv("APP_NAME"),
			Port:    os.Getenv("PORT"),
			Env:     os.Getenv("APP_ENV"),
			Debug:   os.Getenv("DEBUG") == "true",

			AffiliateBaseURL: getEnv("ALI_BASE_URL", "https://api-sg.aliexpress.com/sync"),
			AppKey:           os.Getenv("ALI_APP_KEY"),
			AppSecret:        os.Getenv("ALI_APP_SECRET"),
			TrackingID:       getEnv("ALI_TRACKING_ID", "default"),
			ShipToCountry:    getEnv("SHIP_TO_COUNTRY", "BR"),
			TargetCurrency:   getEnv("TARGET_CURRENCY", "BRL"),
			TargetLanguage:   getEnv("TARGET_LANGUAGE", "pt_BR"),
			PageSize:         getEnvInt("PAGE_SIZE", 15),
		}
	})
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
