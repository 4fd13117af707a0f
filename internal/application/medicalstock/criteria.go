package medicalstock

import (
	"fmt"
	"time"

	"github.com/jhoicas/Hospital-api/internal/domain"
	"github.com/jhoicas/Hospital-api/internal/domain/entity"
	"github.com/jhoicas/Hospital-api/internal/domain/repository"
)

// Criteria criterio de consulta del libro de movimientos. Es un value object
// explícito que se arma con los setters y se compila a repository.MovementFilter;
// reemplaza la lectura directa de widgets compartidos.
//
// Reglas que el criterio garantiza antes de compilar:
//   - producto y categoría son mutuamente excluyentes (elegir uno limpia el otro)
//   - la sala solo restringe cuando el alcance de tipo es de descargas
//   - cada rango de fechas viene completo (ambos extremos o ninguno) y sin invertir
//   - con lote automático el rango de preparación no aplica y se ignora
type Criteria struct {
	medical  Selection[int]
	category Selection[string]
	ward     Selection[string]
	movType  TypeSelection

	typeIsDischarge bool

	movFrom, movTo         *time.Time
	lotPrepFrom, lotPrepTo *time.Time
	lotDueFrom, lotDueTo   *time.Time

	autoLot bool
}

// NewCriteria crea el criterio con los valores por defecto de la pantalla:
// sin restricciones de producto, categoría, sala ni tipo, y la ventana de
// movimiento de la última semana hasta hoy.
func NewCriteria(autoLot bool) *Criteria {
	c := &Criteria{autoLot: autoLot}
	c.Reset()
	return c
}

// Reset restaura todos los filtros a su estado inicial.
func (c *Criteria) Reset() {
	c.medical = All[int]()
	c.category = All[string]()
	c.ward = All[string]()
	c.movType = AllTypes()
	c.typeIsDischarge = false

	to := time.Now()
	from := to.AddDate(0, 0, -7)
	c.movFrom, c.movTo = &from, &to
	c.lotPrepFrom, c.lotPrepTo = nil, nil
	c.lotDueFrom, c.lotDueTo = nil, nil
}

// SelectMedical restringe a un producto concreto y limpia la categoría.
func (c *Criteria) SelectMedical(code int) {
	c.medical = Specific(code)
	c.category = All[string]()
}

// SelectCategory restringe a una categoría y limpia el producto.
func (c *Criteria) SelectCategory(code string) {
	c.category = Specific(code)
	c.medical = All[int]()
}

// SelectAllMedicals quita la restricción de producto.
func (c *Criteria) SelectAllMedicals() { c.medical = All[int]() }

// SelectAllCategories quita la restricción de categoría.
func (c *Criteria) SelectAllCategories() { c.category = All[string]() }

// SelectWard restringe a una sala. Solo surte efecto al compilar si el
// alcance de tipo es de descargas.
func (c *Criteria) SelectWard(code string) { c.ward = Specific(code) }

// SelectAllWards quita la restricción de sala.
func (c *Criteria) SelectAllWards() { c.ward = All[string]() }

// SelectType restringe a un tipo de movimiento concreto. Si el tipo es de
// carga, la sala deja de aplicar y se limpia.
func (c *Criteria) SelectType(t entity.MovementType) {
	c.movType = TypeCode(t.Code)
	c.typeIsDischarge = !t.IsCharge()
	if !c.typeIsDischarge {
		c.ward = All[string]()
	}
}

// SelectAllCharges restringe a todas las cargas y limpia la sala.
func (c *Criteria) SelectAllCharges() {
	c.movType = AllCharges()
	c.typeIsDischarge = false
	c.ward = All[string]()
}

// SelectAllDischarges restringe a todas las descargas.
func (c *Criteria) SelectAllDischarges() {
	c.movType = AllDischarges()
	c.typeIsDischarge = true
}

// SelectAllTypes quita la restricción de tipo y limpia la sala.
func (c *Criteria) SelectAllTypes() {
	c.movType = AllTypes()
	c.typeIsDischarge = false
	c.ward = All[string]()
}

// SetMovementRange fija el rango de fecha de movimiento.
func (c *Criteria) SetMovementRange(from, to *time.Time) {
	c.movFrom, c.movTo = from, to
}

// SetLotPrepRange fija el rango de fecha de preparación del lote.
func (c *Criteria) SetLotPrepRange(from, to *time.Time) {
	c.lotPrepFrom, c.lotPrepTo = from, to
}

// SetLotDueRange fija el rango de fecha de vencimiento del lote.
func (c *Criteria) SetLotDueRange(from, to *time.Time) {
	c.lotDueFrom, c.lotDueTo = from, to
}

// SingleMedical devuelve el producto concreto seleccionado, si lo hay. El
// total neto de cantidades solo se calcula en ese caso.
func (c *Criteria) SingleMedical() (int, bool) {
	return c.medical.Value()
}

// MovementWindow devuelve el rango de movimiento vigente, si está fijado.
func (c *Criteria) MovementWindow() (from, to time.Time, ok bool) {
	if c.movFrom == nil || c.movTo == nil {
		return time.Time{}, time.Time{}, false
	}
	return *c.movFrom, *c.movTo, true
}

// TypeSelection devuelve la selección de tipo vigente.
func (c *Criteria) TypeSelection() TypeSelection { return c.movType }

// Category devuelve la categoría seleccionada, si la hay.
func (c *Criteria) Category() (string, bool) { return c.category.Value() }

// Ward devuelve la sala seleccionada, si la hay y aplica.
func (c *Criteria) Ward() (string, bool) {
	if !c.wardApplies() {
		return "", false
	}
	return c.ward.Value()
}

func (c *Criteria) wardApplies() bool {
	return c.movType.IsDischargeScope() || c.typeIsDischarge
}

func validateRange(name string, from, to *time.Time) error {
	if (from == nil) != (to == nil) {
		return fmt.Errorf("%w: el rango de %s está incompleto", domain.ErrInvalidInput, name)
	}
	if from != nil && from.After(*to) {
		return fmt.Errorf("%w: en el rango de %s la fecha inicial es posterior a la final", domain.ErrInvalidInput, name)
	}
	return nil
}

// Validate verifica los tres rangos de fechas. Con lote automático el rango
// de preparación no aplica y no se valida.
func (c *Criteria) Validate() error {
	if err := validateRange("movimiento", c.movFrom, c.movTo); err != nil {
		return err
	}
	if !c.autoLot {
		if err := validateRange("preparación de lote", c.lotPrepFrom, c.lotPrepTo); err != nil {
			return err
		}
	}
	return validateRange("vencimiento de lote", c.lotDueFrom, c.lotDueTo)
}

// Filter valida el criterio y lo compila al filtro del puerto de consulta.
func (c *Criteria) Filter() (repository.MovementFilter, error) {
	if err := c.Validate(); err != nil {
		return repository.MovementFilter{}, err
	}

	var f repository.MovementFilter
	if code, ok := c.medical.Value(); ok {
		f.MedicalCode = &code
	}
	if code, ok := c.category.Value(); ok {
		f.MedicalType = &code
	}
	if code, ok := c.Ward(); ok {
		f.Ward = &code
	}
	f.MovementType = c.movType.queryValue()
	f.MovFrom, f.MovTo = c.movFrom, c.movTo
	if !c.autoLot {
		f.LotPrepFrom, f.LotPrepTo = c.lotPrepFrom, c.lotPrepTo
	}
	f.LotDueFrom, f.LotDueTo = c.lotDueFrom, c.lotDueTo
	return f, nil
}
