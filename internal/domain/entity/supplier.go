package entity

// Supplier proveedor/origen de un movimiento de carga.
type Supplier struct {
	ID   int
	Name string
}
