// cmd/respaldo/main.go: copia consistente de la base sqlite.
// Uso: go run ./cmd/respaldo [-o ruta.db]
// Sin -o el archivo va a BACKUP_DIR con fecha y hora en el nombre.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"negocioapp/internal/config"
	"negocioapp/internal/infra"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	salida := flag.String("o", "", "archivo de destino (por defecto BACKUP_DIR/negocio-AAAAMMDD-HHMMSS.db)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("failed to open database")
	}

	ruta := *salida
	if ruta == "" {
		ruta = infra.NombreRespaldo(cfg.BackupDir, time.Now())
	}
	if err := infra.Respaldar(db, ruta); err != nil {
		log.Fatal().Err(err).Str("ruta", ruta).Msg("backup failed")
	}
	fmt.Println(ruta)
}
