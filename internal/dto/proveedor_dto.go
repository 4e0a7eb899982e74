package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ProveedorRequest struct {
	Nombre string  `json:"nombre" validate:"required,max=120"`
	RUT    *string `json:"rut"    validate:"omitempty,max=20"`
}

type CodigoProveedorRequest struct {
	ProveedorID int64  `json:"proveedor_id" validate:"required,gt=0"`
	ProductoID  int64  `json:"producto_id"  validate:"required,gt=0"`
	Codigo      string `json:"codigo"       validate:"required,max=64"`
}

type CodigoProveedorFilter struct {
	ProveedorID *int64 `form:"proveedor_id"`
	ProductoID  *int64 `form:"producto_id"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProveedorResponse struct {
	ID     int64   `json:"id"`
	Nombre string  `json:"nombre"`
	RUT    *string `json:"rut,omitempty"`
}

type CodigoProveedorResponse struct {
	ID          int64  `json:"id"`
	ProveedorID int64  `json:"proveedor_id"`
	ProductoID  int64  `json:"producto_id"`
	Codigo      string `json:"codigo"`
}
