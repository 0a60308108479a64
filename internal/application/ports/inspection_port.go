package ports

import (
	"context"

	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/entity"
)

// InspectionService puerto de salida hacia la capacidad externa de inspección visual.
// El modelo es opaco: recibe la imagen y devuelve un veredicto OK/NOT_OK con mensaje.
// El contexto debe llevar un timeout; la llamada nunca ocurre dentro de una transacción del libro.
type InspectionService interface {
	Inspect(ctx context.Context, filename string, image []byte) (*entity.InspectionVerdict, error)
}
