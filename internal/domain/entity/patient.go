package entity

import "time"

// Patient proyección mínima del paciente que consumen los browsers.
// El código es el identificador numérico que el usuario teclea en el
// campo de búsqueda de la pantalla de laboratorio.
type Patient struct {
	Code      int
	Name      string // nombre completo para mostrar en la tabla
	Sex       string
	BirthDate *time.Time
}
