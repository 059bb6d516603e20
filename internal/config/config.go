package config

import (
	"log"
	"os"
)

type Config struct {
	Port          string
	DBDSN         string
	MediaDir      string
	LogFile       string
	WhatsAppPhone string
	PaymentAPIURL string
	PaymentToken  string
}

func Load() Config {
	cfg := Config{
		Port:          getenv("PORT", "7500"),
		DBDSN:         getenv("DB_DSN", "opticaluz.db"),
		MediaDir:      getenv("MEDIA_DIR", "./web/media"),
		LogFile:       getenv("LOG_FILE", "./opticaluz.log"),
		WhatsAppPhone: getenv("WHATSAPP_PHONE", "51999999999"),
		PaymentAPIURL: getenv("PAYMENT_API_URL", ""),
		PaymentToken:  os.Getenv("PAYMENT_TOKEN"),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s MEDIA_DIR=%s LOG_FILE=%s WHATSAPP_PHONE=%s",
		cfg.Port, cfg.DBDSN, cfg.MediaDir, cfg.LogFile, cfg.WhatsAppPhone)
	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
