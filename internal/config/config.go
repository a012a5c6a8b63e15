package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Display DisplayConfig
	Source  SourceConfig
	App     AppConfig
	NATS    NATSConfig
	MQTT    MQTTConfig
}

// DisplayConfig son las opciones estáticas del trazo.
type DisplayConfig struct {
	LineColor       string
	LineWidth       float64
	BackgroundColor string
	GridColor       string
	AnimationSpeed  float64       // píxeles por sample
	RefreshRate     time.Duration // orientativo; la cadencia real la define el host
	GridSize        float64
	Width           int
	Height          int
}

type SourceConfig struct {
	APIURL  string
	Timeout time.Duration
	Pattern string
	Beats   int
	Seed    int64 // 0 = semilla por tiempo
}

type AppConfig struct {
	HTTPAddr string
	LogLevel string
	Env      string
}

type NATSConfig struct {
	URL     string
	Subject string
	Params  string
	Batch   int
}

type MQTTConfig struct {
	Broker   string
	Username string
	Password string
	QoS      int
	Topic    string
}

// LoadConfig arma la configuración desde variables de entorno con valores por defecto.
func LoadConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			LineColor:       getEnv("ECG_LINE_COLOR", "#00A651"),
			LineWidth:       getEnvAsFloat("ECG_LINE_WIDTH", 2),
			BackgroundColor: getEnv("ECG_BACKGROUND_COLOR", "#000000"),
			GridColor:       getEnv("ECG_GRID_COLOR", "#004000"),
			AnimationSpeed:  getEnvAsFloat("ECG_ANIMATION_SPEED", 2),
			RefreshRate:     getEnvAsDuration("ECG_REFRESH_RATE", 20*time.Millisecond),
			GridSize:        getEnvAsFloat("ECG_GRID_SIZE", 25),
			Width:           getEnvAsInt("ECG_WIDTH", 800),
			Height:          getEnvAsInt("ECG_HEIGHT", 300),
		},
		Source: SourceConfig{
			APIURL:  getEnv("ECG_API_URL", ""),
			Timeout: getEnvAsDuration("ECG_API_TIMEOUT", 5*time.Second),
			Pattern: getEnv("ECG_PATTERN", "normal"),
			Beats:   getEnvAsInt("ECG_BEATS", 50),
			Seed:    int64(getEnvAsInt("ECG_SEED", 0)),
		},
		App: AppConfig{
			HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
			LogLevel: getEnv("LOG_LEVEL", "info"),
			Env:      getEnv("ENV", "development"),
		},
		NATS: NATSConfig{
			URL:     getEnv("NATS_URL", "nats://127.0.0.1:4222"),
			Subject: getEnv("NATS_SUBJECT", "ecg.wave"),
			Params:  getEnv("NATS_PARAMS_SUBJECT", "ecg.params"),
			Batch:   getEnvAsInt("NATS_BATCH", 10),
		},
		MQTT: MQTTConfig{
			Broker:   getEnv("MQTT_BROKER", ""),
			Username: getEnv("MQTT_USERNAME", ""),
			Password: getEnv("MQTT_PASSWORD", ""),
			QoS:      getEnvAsInt("MQTT_QOS", 1),
			Topic:    getEnv("MQTT_TOPIC", "ecg"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// acepta "20ms" o milisegundos sueltos ("20")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if ms, err := strconv.Atoi(value); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultValue
}
