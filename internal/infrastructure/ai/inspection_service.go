package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/dedeepya55/SmartStockAIBackend/internal/application/ports"
	"github.com/dedeepya55/SmartStockAIBackend/internal/domain/entity"
)

// Verificar en tiempo de compilación que HTTPInspectionService implementa InspectionService.
var _ ports.InspectionService = (*HTTPInspectionService)(nil)

// HTTPInspectionService adaptador hacia el servicio de inspección visual (modelo opaco).
// Envía la imagen como multipart/form-data en el campo "image" y espera
// {"status": "OK" | "NOT_OK", "message": "..."}.
type HTTPInspectionService struct {
	endpoint   string
	httpClient *http.Client
}

// NewHTTPInspectionService construye el adaptador.
// Si endpoint está vacío las llamadas devuelven error descriptivo en lugar de panic.
func NewHTTPInspectionService(endpoint string) *HTTPInspectionService {
	return &HTTPInspectionService{
		endpoint: strings.TrimSpace(endpoint),
		httpClient: &http.Client{
			// Tope de red; el use case impone además su propio context.WithTimeout.
			Timeout: 30 * time.Second,
		},
	}
}

type inspectionResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Inspect envía la imagen y normaliza el veredicto.
func (s *HTTPInspectionService) Inspect(ctx context.Context, filename string, image []byte) (*entity.InspectionVerdict, error) {
	if s.endpoint == "" {
		return nil, fmt.Errorf("inspección: INSPECTION_URL no configurado")
	}
	if filename == "" {
		filename = "image.jpg"
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("image", filepath.Base(filename))
	if err != nil {
		return nil, fmt.Errorf("inspección: crear multipart: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, fmt.Errorf("inspección: escribir imagen: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("inspección: cerrar multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("inspección: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("inspección: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("inspección: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("inspección: leer respuesta: %w", err)
	}

	var payload inspectionResponse
	jsonErr := json.Unmarshal(rawBody, &payload)
	if resp.StatusCode != http.StatusOK {
		if jsonErr == nil && payload.Error != "" {
			return nil, fmt.Errorf("inspección: HTTP %d: %s", resp.StatusCode, payload.Error)
		}
		return nil, fmt.Errorf("inspección: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(rawBody)))
	}
	if jsonErr != nil {
		return nil, fmt.Errorf("inspección: deserializar respuesta: %w", jsonErr)
	}

	status := strings.ToUpper(strings.TrimSpace(payload.Status))
	switch status {
	case entity.InspectionOK, entity.InspectionNotOK:
	case "NOT OK", "NOTOK":
		status = entity.InspectionNotOK
	default:
		return nil, fmt.Errorf("inspección: estado desconocido %q", payload.Status)
	}
	return &entity.InspectionVerdict{Status: status, Message: strings.TrimSpace(payload.Message)}, nil
}
