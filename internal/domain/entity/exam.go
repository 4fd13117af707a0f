package entity

// ExamType categoría de examen (hematología, química, etc.).
type ExamType struct {
	Code        string
	Description string
}

// Exam examen de laboratorio ofrecido por el hospital.
type Exam struct {
	Code          string
	Description   string
	Type          ExamType
	DefaultResult string
}
