package entity

// Estados del veredicto de inspección visual.
const (
	InspectionOK    = "OK"
	InspectionNotOK = "NOT_OK"
)

// InspectionVerdict resultado opaco de la capacidad externa de inspección de imágenes.
type InspectionVerdict struct {
	Status  string
	Message string
}

// Defective indica si el veredicto requiere alertar.
func (v *InspectionVerdict) Defective() bool {
	return v != nil && v.Status == InspectionNotOK
}
