package medicalstock

// Selection selección de una dimensión de filtro: "todos" o un valor concreto.
// Reemplaza los antiguos valores centinela mezclados con objetos de dominio
// en los combos de la pantalla.
type Selection[T any] struct {
	specific bool
	value    T
}

// All devuelve la selección sin restricción.
func All[T any]() Selection[T] {
	return Selection[T]{}
}

// Specific devuelve la selección de un valor concreto.
func Specific[T any](v T) Selection[T] {
	return Selection[T]{specific: true, value: v}
}

// IsAll indica si la dimensión no restringe la consulta.
func (s Selection[T]) IsAll() bool {
	return !s.specific
}

// Value devuelve el valor concreto y si existe.
func (s Selection[T]) Value() (T, bool) {
	return s.value, s.specific
}

type typeKind int

const (
	typeAll typeKind = iota
	typeAllCharges
	typeAllDischarges
	typeSpecific
)

// TypeSelection selección del tipo de movimiento. Además de "todos" y un
// código concreto admite dos agregados: todas las cargas y todas las
// descargas, que el puerto de consulta recibe como los marcadores "+"/"-".
type TypeSelection struct {
	kind typeKind
	code string
}

// AllTypes no restringe por tipo de movimiento.
func AllTypes() TypeSelection { return TypeSelection{kind: typeAll} }

// AllCharges restringe a todos los tipos que incrementan stock.
func AllCharges() TypeSelection { return TypeSelection{kind: typeAllCharges} }

// AllDischarges restringe a todos los tipos que decrementan stock.
func AllDischarges() TypeSelection { return TypeSelection{kind: typeAllDischarges} }

// TypeCode restringe a un tipo de movimiento concreto.
func TypeCode(code string) TypeSelection { return TypeSelection{kind: typeSpecific, code: code} }

// IsAll indica si no hay restricción de tipo.
func (t TypeSelection) IsAll() bool { return t.kind == typeAll }

// IsDischargeScope indica si la selección abarca solo descargas (el filtro
// por sala únicamente tiene sentido en ese caso).
func (t TypeSelection) IsDischargeScope() bool { return t.kind == typeAllDischarges }

// queryValue traduce la selección al parámetro que espera el puerto de
// consulta: nil sin restricción, "+"/"-" para los agregados, o el código.
func (t TypeSelection) queryValue() *string {
	switch t.kind {
	case typeAllCharges:
		s := "+"
		return &s
	case typeAllDischarges:
		s := "-"
		return &s
	case typeSpecific:
		c := t.code
		return &c
	default:
		return nil
	}
}

// Code devuelve el código concreto seleccionado, si lo hay.
func (t TypeSelection) Code() (string, bool) {
	return t.code, t.kind == typeSpecific
}
