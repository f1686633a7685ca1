package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Fontes de localização suportadas.
const (
	LocationSourceCatalog  = "catalog"
	LocationSourcePostgres = "postgres"
)

// Config armazena todas as configurações do núcleo de armazéns.
type Config struct {
	// Geral
	Environment string
	LogLevel    string

	// Banco de Dados (PostgreSQL)
	DatabaseURL string
	DBTimeout   time.Duration

	// Cache (Redis) das localizações
	RedisAddr        string
	CacheTimeout     time.Duration
	LocationCacheTTL time.Duration

	// Localizações: "catalog" (lista fixa) ou "postgres" (tabela locations)
	LocationSource string

	// Busca
	SearchDefaultPageSize int
}

// LoadConfig carrega as configurações a partir das variáveis de ambiente.
// DATABASE_URL é obrigatória; a ausência encerra o processo.
func LoadConfig() *Config {
	cfg := loadCommon()
	cfg.DatabaseURL = mustGetEnv("DATABASE_URL")
	return cfg
}

// LoadOptionalConfig carrega as configurações sem exigir DATABASE_URL.
// Usado quando o armazenamento em memória dispensa o banco.
func LoadOptionalConfig() *Config {
	cfg := loadCommon()
	cfg.DatabaseURL = getEnv("DATABASE_URL", "")
	return cfg
}

func loadCommon() *Config {
	cfg := &Config{
		// 1. Geral
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		// 2. Banco de Dados (PostgreSQL)
		DBTimeout: getDurationEnv("DB_TIMEOUT_SEC", 5) * time.Second, // 5s padrão

		// 3. Cache (Redis)
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		CacheTimeout:     getDurationEnv("CACHE_TIMEOUT_SEC", 10) * time.Second,        // 10s padrão
		LocationCacheTTL: getDurationEnv("LOCATION_CACHE_TTL_MIN", 30) * time.Minute, // 30 min padrão

		// 4. Localizações
		LocationSource: strings.ToLower(getEnv("LOCATION_SOURCE", LocationSourceCatalog)),

		// 5. Busca
		SearchDefaultPageSize: getIntEnv("SEARCH_DEFAULT_PAGE_SIZE", 20),
	}

	if cfg.LocationSource != LocationSourceCatalog && cfg.LocationSource != LocationSourcePostgres {
		log.Printf("⚠️ Aviso: LOCATION_SOURCE '%s' desconhecida. Usando padrão (%s).", cfg.LocationSource, LocationSourceCatalog)
		cfg.LocationSource = LocationSourceCatalog
	}

	return cfg
}

// Funções Helpers (Auxiliares)

// getEnv lê a variável de ambiente ou retorna um valor padrão.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// mustGetEnv lê a variável de ambiente, fatal se não estiver presente.
func mustGetEnv(key string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Fatalf("❌ Erro de Configuração: A variável de ambiente %s deve ser definida.", key)
	return ""
}

// getDurationEnv lê uma variável de ambiente numérica e retorna-a como time.Duration.
func getDurationEnv(key string, defaultValue int) time.Duration {
	return time.Duration(getIntEnv(key, defaultValue))
}

// getIntEnv lê uma variável de ambiente numérica e retorna-a como int.
func getIntEnv(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("⚠️ Aviso: Valor de %s ('%s') não é um número inteiro válido. Usando padrão (%d).", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
