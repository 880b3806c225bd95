package main

import (
	"context"
	"flag"
	"os"

	"github.com/doneduardo/catalogo-core/internal/application/auth"
	"github.com/doneduardo/catalogo-core/internal/application/catalogo"
	"github.com/doneduardo/catalogo-core/internal/application/stockbajo"
	"github.com/doneduardo/catalogo-core/internal/events"
	"github.com/doneduardo/catalogo-core/internal/infrastructure/gateway"
	infrapdf "github.com/doneduardo/catalogo-core/internal/infrastructure/pdf"
	"github.com/doneduardo/catalogo-core/pkg/config"
	"github.com/doneduardo/catalogo-core/pkg/logger"
)

func main() {
	var rutaReporte string
	flag.StringVar(&rutaReporte, "reporte", "", "ruta de salida del PDF del catálogo (opcional)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	if err := cfg.Validate(); err != nil {
		panic(err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("gateway", cfg.API.BaseURL).
		Msg("iniciando cliente de catálogo")

	ctx := context.Background()

	cliente := gateway.NewCliente(gateway.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout(),
	}, log)

	sesion := auth.NewSesion(cliente, log)
	if cfg.API.Usuario == "" {
		log.Fatal().Msg("API_USUARIO y API_CLAVE son obligatorios para operar")
	}
	if err := sesion.Entrar(ctx, cfg.API.Usuario, cfg.API.Clave); err != nil {
		log.Fatal().Err(err).Msg("login contra el gateway")
	}

	bus := events.NewBus(log)
	store := catalogo.NewStore(cliente, sesion, bus, log)
	watcher := stockbajo.NewWatcher(cliente, sesion, log)

	store.EnsureCategorias(ctx)
	store.EnsureMarcas(ctx)
	store.EnsureUnidades(ctx)
	store.EnsureProductos(ctx)
	store.EnsureConversiones(ctx)
	if msg := store.Error(); msg != "" {
		log.Fatal().Str("detalle", msg).Msg("carga de catálogo incompleta")
	}

	watcher.Sincronizar(ctx)

	log.Info().
		Int("categorias", len(store.Categorias())).
		Int("marcas", len(store.Marcas())).
		Int("unidades", len(store.Unidades())).
		Int("productos", len(store.Productos())).
		Int("conversiones", len(store.Conversiones())).
		Msg("catálogo cargado")

	if watcher.Visible() {
		log.Warn().
			Int("productos", len(watcher.Productos())).
			Msg("hay productos bajo stock mínimo")
	}

	if rutaReporte != "" {
		generador := infrapdf.NewReporteGenerator()
		contenido, err := generador.GenerarCatalogo(store.Productos())
		if err != nil {
			log.Fatal().Err(err).Msg("generar reporte PDF")
		}
		if err := os.WriteFile(rutaReporte, contenido, 0o644); err != nil {
			log.Fatal().Err(err).Msg("escribir reporte PDF")
		}
		log.Info().Str("ruta", rutaReporte).Msg("reporte de catálogo generado")
	}
}
