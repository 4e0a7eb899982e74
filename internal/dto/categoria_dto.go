package dto

// ── Request DTOs ──────────────────────────────────────────────────────────────

type CategoriaRequest struct {
	Nombre string `json:"nombre" validate:"required,max=100"`
}

type GrupoRequest struct {
	Nombre string `json:"nombre" validate:"required,max=100"`
	Precio int64  `json:"precio" validate:"min=0"`
}

type UnidadRequest struct {
	Plural       string `json:"plural"        validate:"required,max=40"`
	Singular     string `json:"singular"      validate:"required,max=40"`
	SufijoPrecio string `json:"sufijo_precio" validate:"required,max=10"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type CategoriaResponse struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
}

type GrupoResponse struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
	Precio int64  `json:"precio"`
	// ProductosActualizados is set after an update: members whose price followed the group.
	ProductosActualizados int64 `json:"productos_actualizados,omitempty"`
}

type UnidadResponse struct {
	ID           int64  `json:"id"`
	Plural       string `json:"plural"`
	Singular     string `json:"singular"`
	SufijoPrecio string `json:"sufijo_precio"`
}
