package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"negocioapp/internal/apperror"
	"negocioapp/internal/dto"
	"negocioapp/internal/infra"
	"negocioapp/internal/repository"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// DatosService covers the database tab: catalog export and backups.
type DatosService interface {
	ExportarProductos(ctx context.Context) ([]dto.ProductoExport, error)
	// Respaldar writes a consistent copy of the database inside the backup
	// directory. ruta is relative to it; empty means a timestamped file.
	Respaldar(ctx context.Context, req dto.RespaldoRequest) (*dto.RespaldoResponse, error)
}

type datosService struct {
	db           *gorm.DB
	productoRepo repository.ProductoRepository
	backupDir    string
	now          func() time.Time
}

func NewDatosService(db *gorm.DB, productoRepo repository.ProductoRepository, backupDir string) DatosService {
	return &datosService{db: db, productoRepo: productoRepo, backupDir: backupDir, now: time.Now}
}

func (s *datosService) ExportarProductos(ctx context.Context) ([]dto.ProductoExport, error) {
	list, err := s.productoRepo.ListConCodigos(ctx)
	if err != nil {
		return nil, storeErr("exportar productos", err)
	}
	out := make([]dto.ProductoExport, 0, len(list))
	for _, p := range list {
		codigos := make([]string, 0, len(p.CodigosBarras))
		for _, c := range p.CodigosBarras {
			codigos = append(codigos, c.Codigo)
		}
		out = append(out, dto.ProductoExport{
			ID:            p.ID,
			Nombre:        p.Nombre,
			CategoriaID:   p.CategoriaID,
			GrupoID:       p.GrupoID,
			UnidadID:      p.UnidadID,
			Precio:        p.Precio,
			AccesoRapido:  p.AccesoRapido,
			Atajo:         p.Atajo,
			CodigosBarras: codigos,
		})
	}
	return out, nil
}

func (s *datosService) Respaldar(ctx context.Context, req dto.RespaldoRequest) (*dto.RespaldoResponse, error) {
	ruta := strings.TrimSpace(req.Ruta)
	switch {
	case ruta == "":
		ruta = infra.NombreRespaldo(s.backupDir, s.now())
	case !filepath.IsLocal(ruta):
		return nil, apperror.Validation("la ruta del respaldo debe ser relativa al directorio de respaldos, sin \"..\"")
	default:
		ruta = filepath.Join(s.backupDir, ruta)
	}
	err := infra.Respaldar(s.db.WithContext(ctx), ruta)
	switch {
	case errors.Is(err, infra.ErrRespaldoNoSoportado):
		return nil, apperror.Validation("el respaldo en archivo solo está disponible con sqlite")
	case errors.Is(err, infra.ErrRespaldoExiste):
		return nil, apperror.Conflict("ya existe un archivo en %s", ruta)
	case err != nil:
		return nil, storeErr("respaldar base de datos", err)
	}
	log.Info().Str("ruta", ruta).Msg("respaldo creado")
	return &dto.RespaldoResponse{Ruta: ruta}, nil
}
