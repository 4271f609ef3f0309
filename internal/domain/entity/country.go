package entity

// Country país de referencia (ISO 3166-1) para muestras por país y celdas
// de respuesta. Catálogo de solo lectura sembrado por migración.
type Country struct {
	Code string // alpha-2, en mayúsculas
	Name string
}
