package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dedeepya55/SmartStockAIBackend/internal/application/dto"
	"github.com/dedeepya55/SmartStockAIBackend/internal/application/ports"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/entity"
	domaininv "github.com/dedeepya55/SmartStockAIBackend/internal/domain/inventory"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/repository"
)

// LedgerUseCase aplica mutaciones del libro de forma transaccional: bloquea el SKU
// (SELECT FOR UPDATE), aplica la regla de dominio y hace Commit o Rollback.
// Dos mutaciones sobre el mismo SKU quedan serializadas; SKU distintos no se bloquean.
type LedgerUseCase struct {
	txRunner TxRunner
	ledger   *domaininv.Ledger
	metrics  ports.LedgerMetrics
	loc      *time.Location
	now      func() time.Time
}

// NewLedgerUseCase construye el caso de uso. metrics nil descarta observaciones; loc nil usa UTC.
func NewLedgerUseCase(txRunner TxRunner, ledger *domaininv.Ledger, metrics ports.LedgerMetrics, loc *time.Location) *LedgerUseCase {
	if metrics == nil {
		metrics = ports.NopLedgerMetrics{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &LedgerUseCase{txRunner: txRunner, ledger: ledger, metrics: metrics, loc: loc, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *LedgerUseCase) WithClock(now func() time.Time) *LedgerUseCase {
	uc.now = now
	return uc
}

// movementInput movimiento ya validado, listo para aplicar.
type movementInput struct {
	dir  entity.Direction
	date time.Time
	qty  int
}

// UpdateProduct aplica en una sola transacción: atributos, sobrescritura de cantidad,
// entrada y salida (en ese orden). Cualquier fallo deja el producto intacto.
func (uc *LedgerUseCase) UpdateProduct(ctx context.Context, sku string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := validateAttributes(in); err != nil {
		return nil, err
	}
	var moves []movementInput
	inMove, err := uc.optionalMovement(entity.DirectionIn, "in", in.InDate, in.InQty)
	if err != nil {
		uc.observeRejection(err)
		return nil, err
	}
	if inMove != nil {
		moves = append(moves, *inMove)
	}
	outMove, err := uc.optionalMovement(entity.DirectionOut, "out", in.OutDate, in.OutQty)
	if err != nil {
		uc.observeRejection(err)
		return nil, err
	}
	if outMove != nil {
		moves = append(moves, *outMove)
	}

	return uc.mutate(ctx, sku, func(p *entity.Product, now time.Time) ([]entity.Movement, error) {
		applyAttributes(p, in, now)
		var recorded []entity.Movement
		if in.Quantity != nil {
			m, err := uc.ledger.SetQuantity(p, *in.Quantity, now)
			if err != nil {
				return nil, err
			}
			if m != nil {
				recorded = append(recorded, *m)
			}
		}
		for _, mv := range moves {
			m, err := uc.apply(p, mv, now)
			if err != nil {
				return nil, err
			}
			recorded = append(recorded, m)
		}
		return recorded, nil
	})
}

// RecordMovement registra una entrada o salida sobre el SKU.
func (uc *LedgerUseCase) RecordMovement(ctx context.Context, sku string, in dto.MovementRequest) (*dto.ProductResponse, error) {
	dir := entity.Direction(strings.ToUpper(strings.TrimSpace(in.Direction)))
	if !dir.Valid() {
		return nil, domain.NewValidationError("direction", "debe ser IN u OUT")
	}
	if in.Qty <= 0 {
		uc.observeRejection(domain.ErrInvalidMovement)
		return nil, domain.ErrInvalidMovement
	}
	var date time.Time
	if strings.TrimSpace(in.Date) != "" {
		d, err := ParseMovementDate(in.Date, uc.loc)
		if err != nil {
			return nil, domain.NewValidationError("date", "formato esperado YYYY-MM-DD o RFC 3339")
		}
		date = d
	}
	mv := movementInput{dir: dir, date: date, qty: in.Qty}

	return uc.mutate(ctx, sku, func(p *entity.Product, now time.Time) ([]entity.Movement, error) {
		if mv.date.IsZero() {
			mv.date = now
		}
		m, err := uc.apply(p, mv, now)
		if err != nil {
			return nil, err
		}
		return []entity.Movement{m}, nil
	})
}

// SetQuantity fija la existencia de forma absoluta (conteo físico).
func (uc *LedgerUseCase) SetQuantity(ctx context.Context, sku string, in dto.SetQuantityRequest) (*dto.ProductResponse, error) {
	if in.Quantity == nil {
		return nil, domain.NewValidationError("quantity", "es requerido")
	}
	if *in.Quantity < 0 {
		return nil, domain.NewValidationError("quantity", "no puede ser negativa")
	}
	return uc.mutate(ctx, sku, func(p *entity.Product, now time.Time) ([]entity.Movement, error) {
		m, err := uc.ledger.SetQuantity(p, *in.Quantity, now)
		if err != nil || m == nil {
			return nil, err
		}
		return []entity.Movement{*m}, nil
	})
}

// mutate bloquea el SKU, ejecuta fn sobre el producto y persiste producto y movimientos nuevos.
func (uc *LedgerUseCase) mutate(
	ctx context.Context,
	sku string,
	fn func(p *entity.Product, now time.Time) ([]entity.Movement, error),
) (*dto.ProductResponse, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, domain.NewValidationError("sku", "es requerido")
	}

	var (
		result   *entity.Product
		recorded []entity.Movement
	)
	err := uc.txRunner.Run(ctx, func(ledgerRepo repository.LedgerRepository) error {
		// Bloquea la fila del producto hasta el Commit/Rollback
		product, err := ledgerRepo.GetForUpdate(ctx, sku)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		recorded, err = fn(product, uc.now())
		if err != nil {
			return err
		}
		if err := ledgerRepo.Update(ctx, product); err != nil {
			return err
		}
		for _, m := range recorded {
			if err := ledgerRepo.AppendMovement(ctx, product.ID, m); err != nil {
				return err
			}
		}
		result = product
		return nil
	})
	if err != nil {
		uc.observeRejection(err)
		return nil, err
	}
	for _, m := range recorded {
		uc.metrics.MovementRecorded(string(m.Direction), m.Qty)
	}
	out := dto.NewProductResponse(result, true)
	return &out, nil
}

func (uc *LedgerUseCase) apply(p *entity.Product, mv movementInput, now time.Time) (entity.Movement, error) {
	if mv.dir == entity.DirectionIn {
		return uc.ledger.RecordIn(p, mv.date, mv.qty, now)
	}
	return uc.ledger.RecordOut(p, mv.date, mv.qty, now)
}

// optionalMovement valida el par fecha/cantidad de UpdateProductRequest.
// Ambos ausentes: nil. Uno sin el otro: ValidationError. qty <= 0: ErrInvalidMovement.
func (uc *LedgerUseCase) optionalMovement(dir entity.Direction, prefix string, date *string, qty *int) (*movementInput, error) {
	hasDate := date != nil && strings.TrimSpace(*date) != ""
	if !hasDate && qty == nil {
		return nil, nil
	}
	if qty == nil {
		return nil, domain.NewValidationError(prefix+"_qty", "es requerido junto con "+prefix+"_date")
	}
	if *qty <= 0 {
		return nil, domain.ErrInvalidMovement
	}
	if !hasDate {
		return nil, domain.NewValidationError(prefix+"_date", "es requerido junto con "+prefix+"_qty")
	}
	d, err := ParseMovementDate(*date, uc.loc)
	if err != nil {
		return nil, domain.NewValidationError(prefix+"_date", "formato esperado YYYY-MM-DD o RFC 3339")
	}
	return &movementInput{dir: dir, date: d, qty: *qty}, nil
}

func (uc *LedgerUseCase) observeRejection(err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidMovement):
		uc.metrics.MovementRejected("invalid_movement")
	case errors.Is(err, domain.ErrInsufficientStock):
		uc.metrics.MovementRejected("insufficient_stock")
	}
}

// validateAttributes rechaza valores que dejarían el producto inconsistente.
func validateAttributes(in dto.UpdateProductRequest) error {
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return domain.NewValidationError("title", "no puede quedar vacío")
	}
	if in.Price != nil && in.Price.LessThan(decimal.Zero) {
		return domain.NewValidationError("price", "no puede ser negativo")
	}
	if in.MinStock != nil && *in.MinStock < 0 {
		return domain.NewValidationError("min_stock", "no puede ser negativo")
	}
	if in.MaxStock != nil && *in.MaxStock < 0 {
		return domain.NewValidationError("max_stock", "no puede ser negativo")
	}
	return nil
}

// applyAttributes copia solo los campos presentes.
func applyAttributes(p *entity.Product, in dto.UpdateProductRequest, now time.Time) {
	if in.Title != nil {
		p.Title = strings.TrimSpace(*in.Title)
	}
	if in.Category != nil {
		p.Category = strings.TrimSpace(*in.Category)
	}
	if in.Warehouse != nil {
		p.Warehouse = strings.TrimSpace(*in.Warehouse)
	}
	if in.Image != nil {
		p.Image = *in.Image
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.MinStock != nil {
		p.MinStock = *in.MinStock
	}
	if in.MaxStock != nil {
		p.MaxStock = *in.MaxStock
	}
	p.LastModified = now
}

// ParseMovementDate acepta YYYY-MM-DD (medianoche en loc) o RFC 3339.
func ParseMovementDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation("2006-01-02", s, loc); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
