package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	configFilePathENV = "CONFIG_FILE"
	tokenTelegramENV  = "TELEGRAM_TOKEN"
	chatTelegramENV   = "TELEGRAM_CHAT_ID"
	databaseDSN       = "DATABASE_DSN"
)

// Config ...
type Config struct {
	Telegram struct {
		Token       string `yaml:"token"`
		AdminChatID int64  `yaml:"admin_chat_id"`
	} `yaml:"telegram"`
	DB string `yaml:"db_dsn"` // пусто => работаем без Postgres

	Binance struct {
		BaseURL string `yaml:"base_url"`
		WSURL   string `yaml:"ws_url"`
	} `yaml:"binance"`

	// Watchlist и референс-актив
	Symbols         []string `yaml:"symbols"`
	ReferenceSymbol string   `yaml:"reference_symbol"`

	Strategy struct {
		ShortInterval string  `yaml:"short_interval"` // таймфрейм для shortScore
		LongInterval  string  `yaml:"long_interval"`  // таймфрейм для longScore
		KlineLimit    int     `yaml:"kline_limit"`    // сколько свечей тянем (>= период+1)
		RSIPeriod     int     `yaml:"rsi_period"`
		RSILongMax    float64 `yaml:"rsi_long_max"`  // longScore строго ниже
		RSIShortMin   float64 `yaml:"rsi_short_min"` // shortScore строго выше
		SellMarginPct float64 `yaml:"sell_margin"`   // 0.011 => цель = вход * 1.011
		AveragingDown bool    `yaml:"averaging_down"`
	} `yaml:"strategy"`

	PollInterval time.Duration `yaml:"poll_interval"`
	Cooldown     time.Duration `yaml:"cooldown"` // пауза между НОВЫМИ сигналами по символу

	Siglog struct {
		Dir string `yaml:"dir"` // куда писать samples.csv / signals.csv
	} `yaml:"siglog"`

	Health struct {
		Addr string `yaml:"addr"`
	} `yaml:"health"`

	Jaeger struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	} `yaml:"jaeger"`
}

func NewConfig() (*Config, error) {

	configFileName := os.Getenv(configFilePathENV)
	if configFileName == "" {
		configFileName = "values_local.yaml"
	}
	file, err := os.Open("configs/" + configFileName)
	if err != nil {
		log.Fatalf("Failed to open config file: %v", err)
	}

	defer func() {
		_ = file.Close()
	}()

	decoder := yaml.NewDecoder(file)
	config := Config{
		ReferenceSymbol: getenvDefault("REFERENCE_SYMBOL", "BTCUSDT"),
		PollInterval:    durationFromEnv("POLL_INTERVAL", "20s"),
		Cooldown:        durationFromEnv("SIGNAL_COOLDOWN", "30m"),
	}
	config.Binance.BaseURL = "https://api.binance.com"
	config.Binance.WSURL = "wss://stream.binance.com:9443"
	config.Strategy.ShortInterval = getenvDefault("SHORT_INTERVAL", "5m")
	config.Strategy.LongInterval = getenvDefault("LONG_INTERVAL", "4h")
	config.Strategy.KlineLimit = intFromEnv("KLINE_LIMIT", 15)
	config.Strategy.RSIPeriod = intFromEnv("RSI_PERIOD", 14)
	config.Strategy.RSILongMax = floatFromEnv("RSI_LONG_MAX", 10)
	config.Strategy.RSIShortMin = floatFromEnv("RSI_SHORT_MIN", 30)
	config.Strategy.SellMarginPct = floatFromEnv("SELL_MARGIN", 0.011)
	config.Strategy.AveragingDown = boolFromEnv("AVERAGING_DOWN", true)
	config.Siglog.Dir = getenvDefault("SIGLOG_DIR", "data")
	config.Health.Addr = getenvDefault("HEALTH_ADDR", ":8080")

	err = decoder.Decode(&config)
	if err != nil {
		log.Fatalf("Failed to decode config file: %v", err)
	}

	token := os.Getenv(tokenTelegramENV)
	if token != "" {
		config.Telegram.Token = token
	}

	if chat := os.Getenv(chatTelegramENV); chat != "" {
		if id, err := strconv.ParseInt(chat, 10, 64); err == nil {
			config.Telegram.AdminChatID = id
		}
	}

	dsn := os.Getenv(databaseDSN)
	if dsn != "" {
		config.DB = dsn
	}

	if raw := os.Getenv("SYMBOLS"); raw != "" {
		config.Symbols = config.Symbols[:0]
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				config.Symbols = append(config.Symbols, strings.ToUpper(s))
			}
		}
	}

	return &config, nil
}

func intFromEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func floatFromEnv(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func boolFromEnv(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if v == "1" || v == "true" || v == "TRUE" {
			return true
		}
		if v == "0" || v == "false" || v == "FALSE" {
			return false
		}
	}
	return def
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationFromEnv(key, def string) time.Duration {
	val := getenvDefault(key, def)
	d, err := time.ParseDuration(val)
	if err != nil {
		d, _ = time.ParseDuration(def)
	}
	return d
}
