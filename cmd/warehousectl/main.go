package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"gowarehouse/config"
	"gowarehouse/internal/domain"
	"gowarehouse/internal/pkg/cache"
	"gowarehouse/internal/pkg/database"
	"gowarehouse/internal/pkg/logger"
	"gowarehouse/internal/pkg/metrics"
	"gowarehouse/internal/repository/locationrepo"
	"gowarehouse/internal/repository/warehouserepo"
	"gowarehouse/internal/service/warehouseservice"
)

const usage = `uso: warehousectl [-store postgres|memory] <comando> [flags]

comandos:
  create   -code -location -capacity [-stock]
  get      -code
  archive  -code
  replace  -code -location -capacity [-stock]
  search   [-location] [-min-capacity] [-max-capacity] [-sort capacity|createdAt] [-order asc|desc] [-page] [-page-size]
`

func main() {
	// 0. CARREGAR VARIÁVEIS DE AMBIENTE (.env)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	storeKind := flag.String("store", "postgres", "armazenamento de armazéns: postgres ou memory")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	// 1. Configuração e Logger
	cfg := config.LoadOptionalConfig()
	if *storeKind != "memory" || cfg.LocationSource == config.LocationSourcePostgres {
		cfg = config.LoadConfig()
	}

	appLog := logger.NewLogger(cfg.LogLevel)
	if zl, ok := appLog.(*logger.ZapLogger); ok {
		defer zl.Sync()
	}
	appLog.Debug("Configurações carregadas.", map[string]interface{}{"env": cfg.Environment, "store": *storeKind})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Infraestrutura e Injeção de Dependências
	// Ordem: Repositório -> Resolver de Localização -> Serviço
	var db *sql.DB
	connect := func() *sql.DB {
		if db == nil {
			conn, err := database.NewPostgresDB(cfg.DatabaseURL, database.DefaultPoolConfig(), cfg.DBTimeout)
			if err != nil {
				appLog.Fatal("Falha ao conectar ao banco de dados.", err)
			}
			appLog.Debug("Conexão PostgreSQL estabelecida.", nil)
			db = conn
		}
		return db
	}
	defer func() {
		if db != nil {
			db.Close()
		}
	}()

	var store domain.WarehouseStore
	switch *storeKind {
	case "postgres":
		store = warehouserepo.NewWarehouseRepository(connect(), cfg.DBTimeout, appLog)
	case "memory":
		store = warehouserepo.NewMemoryRepository()
	default:
		fmt.Fprintf(os.Stderr, "armazenamento desconhecido: %s\n", *storeKind)
		os.Exit(2)
	}

	var locations domain.LocationResolver = locationrepo.NewCatalog(locationrepo.DefaultLocations...)
	if cfg.LocationSource == config.LocationSourcePostgres {
		locations = locationrepo.NewLocationRepository(connect(), cfg.DBTimeout, appLog)

		// Cache de localizações é opcional: sem Redis, consultas vão direto à tabela.
		redisClient, err := cache.NewRedisClient(cfg.RedisAddr, "warehouse:", cfg.CacheTimeout)
		if err != nil {
			appLog.Warn("Redis indisponível, seguindo sem cache de localizações.", map[string]interface{}{"error": err.Error()})
		} else {
			defer redisClient.Close()
			locations = locationrepo.NewCachedResolver(locations, redisClient, cfg.LocationCacheTTL, appLog)
		}
	}

	svc := warehouseservice.NewService(store, locations, appLog,
		warehouseservice.WithMetrics(metrics.NewMetrics(prometheus.DefaultRegisterer)))

	// 3. Execução do comando
	if err := run(ctx, svc, cfg, flag.Args(), os.Stdout); err != nil {
		appLog.Debug("Comando falhou.", map[string]interface{}{"error": err.Error()})
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}
