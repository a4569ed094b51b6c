// collect recorre la API de ventas de origen para un período y escribe el
// reporte consolidado (ventas + KPIs) en un archivo JSON.
//
// Uso: go run ./cmd/collect --from 2024-01-01 --to 2024-01-31 [--out vendas_consolidadas.json]
// El token se lee de YOOGA_TOKEN (variable de entorno o .env). Con
// CACHE_ENABLED=true los meses cerrados se leen/guardan en PostgreSQL.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/jhoicas/painel-vendas/internal/application/report"
	"github.com/jhoicas/painel-vendas/internal/domain/entity"
	"github.com/jhoicas/painel-vendas/internal/domain/repository"
	"github.com/jhoicas/painel-vendas/internal/infrastructure/httpclient"
	"github.com/jhoicas/painel-vendas/internal/infrastructure/postgres"
	"github.com/jhoicas/painel-vendas/internal/infrastructure/yooga"
	"github.com/jhoicas/painel-vendas/pkg/config"
	"github.com/jhoicas/painel-vendas/pkg/logger"
)

func main() {
	today := time.Now().Format(entity.DateLayout)
	from := pflag.String("from", today, "fecha inicial (yyyy-mm-dd)")
	to := pflag.String("to", today, "fecha final (yyyy-mm-dd)")
	out := pflag.String("out", "vendas_consolidadas.json", "archivo de salida")
	pflag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	if cfg.Upstream.Token == "" {
		fmt.Fprintln(os.Stderr, "YOOGA_TOKEN no definido (variable de entorno o .env)")
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cache repository.PeriodCache
	if cfg.DB.CacheEnabled {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
			os.Exit(1)
		}
		defer pool.Close()
		repo := postgres.NewPeriodCacheRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Crear tabla de caché: %v\n", err)
			os.Exit(1)
		}
		cache = repo
	}

	client := yooga.NewClient(httpclient.Options{
		BaseURL:    cfg.Upstream.BaseURL,
		Timeout:    cfg.Upstream.Timeout,
		RetryCount: cfg.Upstream.RetryCount,
		RetryWait:  cfg.Upstream.RetryWait,
	}, log.Component("yooga"))
	collector := report.NewGenerateReportUseCase(client, cache, cfg.Upstream.PageDelay, log.Component("collector"))

	payload, err := collector.GenerateReport(ctx, cfg.Upstream.Token, *from, *to)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar reporte: %v\n", err)
		os.Exit(1)
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Serializar JSON: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir archivo: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Escrito: %s (%d ventas, valor líquido %s)\n", *out, payload.Total, payload.KPIs.ValorLiquido.StringFixed(2))
}
