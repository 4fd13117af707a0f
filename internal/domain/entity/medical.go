package entity

// MedicalType categoría de producto farmacéutico.
type MedicalType struct {
	Code        string
	Description string
}

// Medical producto farmacéutico del inventario.
type Medical struct {
	Code        int
	ProdCode    string
	Description string
	Type        MedicalType
}
