package dto

import "time"

// CreateOrderRequest recepción del equipo.
type CreateOrderRequest struct {
	ClientID           string `json:"client_id"`
	DeviceDescription  string `json:"device_description"`
	ProblemDescription string `json:"problem_description"`
}

type AssignTechnicianRequest struct {
	TechnicianID string `json:"technician_id"`
}

// UpdateNotesRequest notas de diagnóstico (técnico) o de gerencia (gerente).
type UpdateNotesRequest struct {
	DiagnosisNotes *string `json:"diagnosis_notes"`
	ManagerNotes   *string `json:"manager_notes"`
}

type ConsumePartRequest struct {
	PartID   string `json:"part_id"`
	Quantity int    `json:"quantity"`
}

// OrderListRequest filtros del listado general.
type OrderListRequest struct {
	PageRequest
	Status string `query:"status"`
}

type RepairOrderResponse struct {
	ID                   string     `json:"id"`
	Number               string     `json:"number"`
	ClientID             string     `json:"client_id"`
	TechnicianID         string     `json:"technician_id,omitempty"`
	Status               string     `json:"status"`
	DeviceDescription    string     `json:"device_description"`
	ProblemDescription   string     `json:"problem_description"`
	DiagnosisNotes       string     `json:"diagnosis_notes,omitempty"`
	ManagerNotes         string     `json:"manager_notes,omitempty"`
	TotalWorkTimeMinutes int        `json:"total_work_time_minutes"`
	CreatedAt            time.Time  `json:"created_at"`
	StartDate            *time.Time `json:"start_date,omitempty"`
	EndDate              *time.Time `json:"end_date,omitempty"`
}

type OrderListResponse struct {
	Items []RepairOrderResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// FinishRepairResponse Warnings lista repuestos presupuestados que no se retiraron.
type FinishRepairResponse struct {
	Order    RepairOrderResponse `json:"order"`
	Warnings []string            `json:"warnings,omitempty"`
}

// ExecutionResult estado tras iniciar la ejecución; Backorders vacío si había stock.
type ExecutionResult struct {
	Order      RepairOrderResponse `json:"order"`
	Backorders []PartOrderResponse `json:"backorders,omitempty"`
}

type WorkLogResponse struct {
	ID              string     `json:"id"`
	OrderID         string     `json:"order_id"`
	TechnicianID    string     `json:"technician_id"`
	StartTime       time.Time  `json:"start_time"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	DurationMinutes int        `json:"duration_minutes"`
}

// StatusSummary contadores del tablero del gerente.
type StatusSummary struct {
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
	Open   int            `json:"open"`
}

// ReasonRequest motivo libre (equipo irreparable).
type ReasonRequest struct {
	Reason string `json:"reason"`
}

// BackorderRequest repuestos faltantes que el técnico pide durante la reparación.
type BackorderRequest struct {
	Items []ConsumePartRequest `json:"items"`
}
