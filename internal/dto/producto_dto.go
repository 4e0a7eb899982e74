package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	// ID is optional: the cashier may choose the product code, which the cart
	// search also matches.
	ID            *int64   `json:"id"             validate:"omitempty,gt=0"`
	Nombre        string   `json:"nombre"         validate:"required,max=120"`
	CategoriaID   *int64   `json:"categoria_id"   validate:"omitempty,gt=0"`
	GrupoID       *int64   `json:"grupo_id"       validate:"omitempty,gt=0"`
	UnidadID      *int64   `json:"unidad_id"      validate:"omitempty,gt=0"`
	Precio        int64    `json:"precio"         validate:"min=0"`
	AccesoRapido  bool     `json:"acceso_rapido"`
	Atajo         *string  `json:"atajo"          validate:"omitempty,max=3"`
	CodigosBarras []string `json:"codigos_barras" validate:"omitempty,dive,required,max=64"`
}

// ActualizarProductoRequest patches a product. For the reference fields a
// value of 0 removes the reference; for Atajo an empty string clears it.
type ActualizarProductoRequest struct {
	Nombre       *string `json:"nombre"        validate:"omitempty,max=120"`
	CategoriaID  *int64  `json:"categoria_id"  validate:"omitempty,min=0"`
	GrupoID      *int64  `json:"grupo_id"      validate:"omitempty,min=0"`
	UnidadID     *int64  `json:"unidad_id"     validate:"omitempty,min=0"`
	Precio       *int64  `json:"precio"        validate:"omitempty,min=0"`
	AccesoRapido *bool   `json:"acceso_rapido"`
	Atajo        *string `json:"atajo"         validate:"omitempty,max=3"`
}

type AccesoRapidoRequest struct {
	AccesoRapido bool    `json:"acceso_rapido"`
	Atajo        *string `json:"atajo" validate:"omitempty,max=3"`
}

type CodigoBarrasRequest struct {
	ProductoID int64  `json:"producto_id" validate:"required,gt=0"`
	Codigo     string `json:"codigo"      validate:"required,max=64"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

type ProductoFilter struct {
	Nombre      string `form:"nombre"`
	CategoriaID *int64 `form:"categoria_id"`
	GrupoID     *int64 `form:"grupo_id"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID            int64    `json:"id"`
	Nombre        string   `json:"nombre"`
	CategoriaID   *int64   `json:"categoria_id"`
	GrupoID       *int64   `json:"grupo_id"`
	UnidadID      *int64   `json:"unidad_id"`
	Precio        int64    `json:"precio"`
	PrecioTexto   string   `json:"precio_texto"`
	SufijoPrecio  string   `json:"sufijo_precio,omitempty"`
	AccesoRapido  bool     `json:"acceso_rapido"`
	Atajo         *string  `json:"atajo"`
	CodigosBarras []string `json:"codigos_barras,omitempty"`
}

type CodigoBarrasResponse struct {
	ID         int64  `json:"id"`
	ProductoID int64  `json:"producto_id"`
	Codigo     string `json:"codigo"`
	// YaAsignado reports that the code already belonged to this product.
	YaAsignado bool `json:"ya_asignado,omitempty"`
}

// Resolucion of a search term: exactly one product, none, or several candidates.
const (
	ResolucionExacta   = "exacta"
	ResolucionNinguna  = "ninguna"
	ResolucionMultiple = "multiple"
)

type ResolucionResponse struct {
	Tipo       string             `json:"tipo"`
	Producto   *ProductoResponse  `json:"producto,omitempty"`
	Candidatos []ProductoResponse `json:"candidatos,omitempty"`
}

type AtajoDisponibleResponse struct {
	Atajo      string `json:"atajo"`
	Disponible bool   `json:"disponible"`
	// ProductoID is the current owner when the shortcut is taken.
	ProductoID *int64 `json:"producto_id,omitempty"`
}

// ProductoExport is one entry of the catalog JSON export.
type ProductoExport struct {
	ID            int64    `json:"id"`
	Nombre        string   `json:"nombre"`
	CategoriaID   *int64   `json:"categoria_id"`
	GrupoID       *int64   `json:"grupo_id"`
	UnidadID      *int64   `json:"unidad_id"`
	Precio        int64    `json:"precio"`
	AccesoRapido  bool     `json:"acceso_rapido"`
	Atajo         *string  `json:"atajo"`
	CodigosBarras []string `json:"codigos_barras"`
}
