package entity

// Categoria representa una categoría del catálogo de productos.
// Espejo directo del JSON que devuelve el gateway; la capa de caché no la transforma.
type Categoria struct {
	CategoriaID     int    `json:"categoria_id"`
	NombreCategoria string `json:"nombre_categoria"`
}
