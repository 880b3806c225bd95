package entity

// Marca representa una marca comercial del catálogo.
type Marca struct {
	MarcaID     int    `json:"marca_id"`
	NombreMarca string `json:"nombre_marca"`
}
