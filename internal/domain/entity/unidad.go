package entity

// Unidad representa una unidad de medida (ej. "Unidad", "Kilogramo", "Caja").
// Datos de referencia casi estáticos: se cargan una vez y no tienen notificadores.
type Unidad struct {
	UnidadID       int    `json:"unidad_id"`
	NombreUnidad   string `json:"nombre_unidad"`
	Abreviatura    string `json:"abreviatura"`
	EsFraccionable bool   `json:"es_fraccionable"` // permite cantidades fraccionadas (ej. 0.5 kg)
}
