package entity

import "time"

// OrderStatus estado de la orden de reparación. Se persiste con el texto exacto.
type OrderStatus string

const (
	StatusNew                  OrderStatus = "NEW"
	StatusWaitingForTechnician OrderStatus = "WAITING_FOR_TECHNICIAN"
	StatusDiagnosing           OrderStatus = "DIAGNOSING"
	StatusWaitingForAcceptance OrderStatus = "WAITING_FOR_ACCEPTANCE"
	StatusWaitingForParts      OrderStatus = "WAITING_FOR_PARTS"
	StatusInProgress           OrderStatus = "IN_PROGRESS"
	StatusReadyForPickup       OrderStatus = "READY_FOR_PICKUP"
	StatusCompleted            OrderStatus = "COMPLETED"
	StatusCancelled            OrderStatus = "CANCELLED"
)

// AllOrderStatuses en el orden del flujo normal (reportes y contadores).
var AllOrderStatuses = []OrderStatus{
	StatusNew, StatusWaitingForTechnician, StatusDiagnosing, StatusWaitingForAcceptance,
	StatusWaitingForParts, StatusInProgress, StatusReadyForPickup, StatusCompleted, StatusCancelled,
}

// RepairOrder orden de reparación de un equipo.
type RepairOrder struct {
	ID                   string
	Number               string // RO-000123
	ClientID             string
	TechnicianID         string // vacío hasta que el gerente asigna
	Status               OrderStatus
	DeviceDescription    string
	ProblemDescription   string
	DiagnosisNotes       string
	ManagerNotes         string
	TotalWorkTimeMinutes int
	CreatedAt            time.Time
	StartDate            *time.Time // primer inicio de diagnóstico
	EndDate              *time.Time // cierre (COMPLETED o CANCELLED)
	UpdatedAt            time.Time
}

func (o *RepairOrder) Clone() *RepairOrder {
	if o == nil {
		return nil
	}
	c := *o
	if o.StartDate != nil {
		t := *o.StartDate
		c.StartDate = &t
	}
	if o.EndDate != nil {
		t := *o.EndDate
		c.EndDate = &t
	}
	return &c
}
