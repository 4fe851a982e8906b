package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App    AppConfig
	HTTP   HTTPConfig
	JWT    JWTConfig
	Sklad  SkladConfig
	Report ReportConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// SkladConfig configuración del cliente de la plataforma de inventario remota.
type SkladConfig struct {
	BaseURL  string // ej. https://api.moysklad.ru/api/remap/1.2
	Token    string // Bearer token de la cuenta
	PageSize int    // límite por página en los endpoints paginados
	Timeout  time.Duration
}

// ReportConfig parámetros del reporte de rentabilidad.
type ReportConfig struct {
	PlanningDays      int    // horizonte por defecto para el pronóstico
	VelocityFrom      string // inicio fijo de la ventana de rotación (YYYY-MM-DD)
	SortDescending    bool   // variante simple ordena descendente por ruta de categoría
	Grouped           bool   // variante jerárquica con filas de encabezado por grupo
	DistinguishNoData bool   // separar "velocidad 0" de "sin datos" en el render
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, HTTP_PORT, SKLAD_TOKEN, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "rentabilidad-api"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "rentabilidad-api"),
		},
		Sklad: SkladConfig{
			BaseURL:  getString(v, "SKLAD_BASE_URL", "https://api.moysklad.ru/api/remap/1.2"),
			Token:    getString(v, "SKLAD_TOKEN", ""),
			PageSize: getInt(v, "SKLAD_PAGE_SIZE", 1000),
			Timeout:  time.Duration(getInt(v, "SKLAD_TIMEOUT_SECONDS", 60)) * time.Second,
		},
		Report: ReportConfig{
			PlanningDays:      getInt(v, "REPORT_PLANNING_DAYS", 30),
			VelocityFrom:      getString(v, "REPORT_VELOCITY_FROM", "2024-01-01"),
			SortDescending:    getBool(v, "REPORT_SORT_DESCENDING", true),
			Grouped:           getBool(v, "REPORT_GROUPED", false),
			DistinguishNoData: getBool(v, "REPORT_DISTINGUISH_NO_DATA", false),
		},
	}

	if cfg.Sklad.PageSize <= 0 {
		return nil, fmt.Errorf("config: SKLAD_PAGE_SIZE debe ser positivo")
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
