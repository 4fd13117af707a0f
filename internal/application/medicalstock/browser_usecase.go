package medicalstock

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Hospital-api/internal/domain"
	"github.com/jhoicas/Hospital-api/internal/domain/entity"
	"github.com/jhoicas/Hospital-api/internal/domain/repository"
	"github.com/jhoicas/Hospital-api/pkg/logger"
)

// Options comportamiento del hospital que afecta al libro de movimientos.
type Options struct {
	AutoLot     bool // lotes generados por el sistema
	LotWithCost bool // los lotes llevan costo; habilita el total monetario
}

// Totals totales derivados de la lista visible. NetQuantity es nil cuando la
// consulta no está acotada a un solo producto; NetAmount es nil cuando los
// lotes no llevan costo.
type Totals struct {
	NetQuantity *int
	NetAmount   *decimal.Decimal
}

// Browser view-model del libro de movimientos de stock. Mantiene la lista
// filtrada, el criterio vigente y los totales derivados. Cada instancia
// pertenece a una sola pantalla.
//
// Igual que en laboratorio, la lista se guarda en orden inverso al de
// presentación y displayIndex hace la única traducción de índices.
type Browser struct {
	movs repository.MovementRepository
	log  *logger.Logger
	opts Options

	criteria *Criteria
	records  []*entity.Movement
	totals   Totals
}

// NewBrowser crea el browser con el criterio en su estado por defecto.
func NewBrowser(movs repository.MovementRepository, opts Options, log *logger.Logger) *Browser {
	return &Browser{
		movs:     movs,
		log:      log,
		opts:     opts,
		criteria: NewCriteria(opts.AutoLot),
		records:  []*entity.Movement{},
	}
}

// Criteria expone el criterio para que la capa de presentación lo arme con
// los setters antes de llamar a ListMovements.
func (b *Browser) Criteria() *Criteria { return b.criteria }

func (b *Browser) displayIndex(i int) int {
	return len(b.records) - 1 - i
}

func (b *Browser) setRecords(fetched []*entity.Movement) {
	b.records = make([]*entity.Movement, 0, len(fetched))
	for i := len(fetched) - 1; i >= 0; i-- {
		b.records = append(b.records, fetched[i])
	}
}

// Rows devuelve la lista en orden de presentación (más reciente primero).
func (b *Browser) Rows() []*entity.Movement {
	rows := make([]*entity.Movement, 0, len(b.records))
	for i := len(b.records) - 1; i >= 0; i-- {
		rows = append(rows, b.records[i])
	}
	return rows
}

// Count devuelve la cantidad de movimientos cargados.
func (b *Browser) Count() int { return len(b.records) }

// Totals devuelve los totales vigentes.
func (b *Browser) Totals() Totals { return b.totals }

// ListMovements valida el criterio, despacha exactamente una consulta y
// reemplaza la lista completa con el resultado, recalculando los totales.
// Un error de validación aborta sin tocar la lista; un fallo del servicio la
// deja vacía, nunca obsoleta.
func (b *Browser) ListMovements(ctx context.Context) ([]*entity.Movement, error) {
	filter, err := b.criteria.Filter()
	if err != nil {
		return nil, err
	}

	movs, err := b.movs.GetMovements(ctx, filter)
	if err != nil {
		b.records = []*entity.Movement{}
		b.recomputeTotals()
		return nil, fmt.Errorf("listado de movimientos: %w", err)
	}

	b.setRecords(movs)
	b.recomputeTotals()
	return b.Rows(), nil
}

// recomputeTotals recorre la lista vigente una sola vez. La cantidad neta
// solo aplica con un producto concreto seleccionado; el signo lo da el tipo.
// El monto neto suma cantidad por costo con el mismo signo, salteando en
// silencio los lotes sin costo definido.
func (b *Browser) recomputeTotals() {
	b.totals = Totals{}

	if _, single := b.criteria.SingleMedical(); single {
		qty := 0
		for _, m := range b.records {
			if m.Type.IsCharge() {
				qty += m.Quantity
			} else {
				qty -= m.Quantity
			}
		}
		b.totals.NetQuantity = &qty
	}

	if !b.opts.LotWithCost {
		return
	}
	amount := decimal.Zero
	for _, m := range b.records {
		if m.Lot.Cost == nil {
			continue
		}
		line := m.Lot.Cost.Mul(decimal.NewFromInt(int64(m.Quantity)))
		if m.Type.IsCharge() {
			amount = amount.Add(line)
		} else {
			amount = amount.Sub(line)
		}
	}
	b.totals.NetAmount = &amount
}

// DeleteLastMovement borra el movimiento indicado solo si sigue siendo el
// último de todo el sistema. La verificación es consultar-y-actuar: entre la
// consulta y el borrado otro usuario puede insertar un movimiento; esa
// ventana se acepta como precondición de mejor esfuerzo, el puerto no ofrece
// un borrado atómico condicionado.
func (b *Browser) DeleteLastMovement(ctx context.Context, code int) error {
	last, err := b.movs.GetLastMovement(ctx)
	if err != nil {
		return fmt.Errorf("consulta del último movimiento: %w", err)
	}
	if last == nil {
		return fmt.Errorf("%w: no hay movimientos registrados", domain.ErrNotFound)
	}
	if last.Code != code {
		return fmt.Errorf("%w: el movimiento %d ya no es el último, se registró otro más reciente", domain.ErrConflict, code)
	}

	if err := b.movs.DeleteLastMovement(ctx, last); err != nil {
		return fmt.Errorf("borrado del movimiento %d: %w", code, err)
	}

	// Si el movimiento estaba en la lista visible, quitarlo y recalcular.
	for i, m := range b.records {
		if m.Code == code {
			b.records = append(b.records[:i], b.records[i+1:]...)
			b.recomputeTotals()
			break
		}
	}
	b.log.Info().Int("movimiento", code).Msg("último movimiento eliminado")
	return nil
}

// RegisterMovement valida y persiste una carga o descarga nueva. Con lote
// automático el identificador de lote se genera acá; sin él es obligatorio.
// La sala solo acompaña a las descargas.
func (b *Browser) RegisterMovement(ctx context.Context, mov *entity.Movement) error {
	if mov.Quantity <= 0 {
		return fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrInvalidInput)
	}
	if mov.Type.IsCharge() && mov.Ward != nil {
		return fmt.Errorf("%w: la sala solo aplica a movimientos de descarga", domain.ErrInvalidInput)
	}

	if mov.Lot.ID == "" {
		if !b.opts.AutoLot {
			return fmt.Errorf("%w: el lote es obligatorio", domain.ErrInvalidInput)
		}
		mov.Lot.ID = uuid.NewString()
	}

	if err := b.movs.Create(ctx, mov); err != nil {
		return fmt.Errorf("registro del movimiento: %w", err)
	}

	b.records = append(b.records, mov)
	b.recomputeTotals()
	b.log.Info().
		Int("producto", mov.Medical.Code).
		Str("tipo", mov.Type.Code).
		Int("cantidad", mov.Quantity).
		Msg("movimiento de stock registrado")
	return nil
}
