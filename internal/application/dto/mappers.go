package dto

import "github.com/jhoicas/Reparaciones-api/internal/domain/entity"

func FromEmployee(e *entity.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		FirstName:  e.FirstName,
		LastName:   e.LastName,
		Email:      e.Email,
		Role:       string(e.Role),
		SkillLevel: string(e.SkillLevel),
		CreatedAt:  e.CreatedAt,
	}
}

func FromClient(c *entity.Client) ClientResponse {
	return ClientResponse{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Phone:     c.Phone,
		Email:     c.Email,
		CreatedAt: c.CreatedAt,
	}
}

func FromServiceAction(a *entity.ServiceAction) ServiceActionResponse {
	return ServiceActionResponse{ID: a.ID, Name: a.Name, Price: a.Price}
}

func FromSparePart(p *entity.SparePart) SparePartResponse {
	return SparePartResponse{
		ID:          p.ID,
		Name:        p.Name,
		Category:    p.Category,
		Quantity:    p.Quantity,
		MinQuantity: p.MinQuantity,
		Price:       p.Price,
		Low:         p.IsLow(),
		UpdatedAt:   p.UpdatedAt,
	}
}

func FromDiscrepancy(d *entity.StockDiscrepancy) DiscrepancyResponse {
	return DiscrepancyResponse{
		ID:         d.ID,
		PartID:     d.PartID,
		Quantity:   d.Quantity,
		Reason:     d.Reason,
		ReportedBy: d.ReportedBy,
		CreatedAt:  d.CreatedAt,
	}
}

func FromRepairOrder(o *entity.RepairOrder) RepairOrderResponse {
	return RepairOrderResponse{
		ID:                   o.ID,
		Number:               o.Number,
		ClientID:             o.ClientID,
		TechnicianID:         o.TechnicianID,
		Status:               string(o.Status),
		DeviceDescription:    o.DeviceDescription,
		ProblemDescription:   o.ProblemDescription,
		DiagnosisNotes:       o.DiagnosisNotes,
		ManagerNotes:         o.ManagerNotes,
		TotalWorkTimeMinutes: o.TotalWorkTimeMinutes,
		CreatedAt:            o.CreatedAt,
		StartDate:            o.StartDate,
		EndDate:              o.EndDate,
	}
}

func FromRepairOrders(list []*entity.RepairOrder) []RepairOrderResponse {
	out := make([]RepairOrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, FromRepairOrder(o))
	}
	return out
}

func FromWorkLog(w *entity.WorkLog) WorkLogResponse {
	return WorkLogResponse{
		ID:              w.ID,
		OrderID:         w.OrderID,
		TechnicianID:    w.TechnicianID,
		StartTime:       w.StartTime,
		EndTime:         w.EndTime,
		DurationMinutes: w.DurationMinutes,
	}
}

func FromCostEstimate(e *entity.CostEstimate) CostEstimateResponse {
	out := CostEstimateResponse{
		ID:         e.ID,
		OrderID:    e.OrderID,
		Parts:      make([]EstimatePartLineResponse, 0, len(e.Parts)),
		Actions:    make([]EstimateActionLineResponse, 0, len(e.Actions)),
		PartsCost:  e.PartsCost,
		LabourCost: e.LabourCost,
		TotalCost:  e.TotalCost,
		Approved:   e.Approved,
		CreatedAt:  e.CreatedAt,
		DecidedAt:  e.DecidedAt,
	}
	for _, l := range e.Parts {
		out.Parts = append(out.Parts, EstimatePartLineResponse(l))
	}
	for _, a := range e.Actions {
		out.Actions = append(out.Actions, EstimateActionLineResponse(a))
	}
	return out
}

func FromPartOrder(p *entity.PartOrder) PartOrderResponse {
	return PartOrderResponse{
		ID:                p.ID,
		PartID:            p.PartID,
		Quantity:          p.Quantity,
		Status:            string(p.Status),
		RepairOrderID:     p.RepairOrderID,
		OrderDate:         p.OrderDate,
		EstimatedDelivery: p.EstimatedDelivery,
	}
}

func FromPartOrders(list []*entity.PartOrder) []PartOrderResponse {
	out := make([]PartOrderResponse, 0, len(list))
	for _, p := range list {
		out = append(out, FromPartOrder(p))
	}
	return out
}

func FromInvoice(inv *entity.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:             inv.ID,
		OrderID:        inv.OrderID,
		ClientID:       inv.ClientID,
		Amount:         inv.Amount,
		PaymentMethod:  string(inv.PaymentMethod),
		Status:         string(inv.Status),
		DocumentNumber: inv.DocumentNumber,
		IssueDate:      inv.IssueDate,
	}
}
