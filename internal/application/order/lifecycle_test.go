package order_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/jhoicas/Reparaciones-api/internal/app/apptest"
	"github.com/jhoicas/Reparaciones-api/internal/application/dto"
	"github.com/jhoicas/Reparaciones-api/internal/domain"
	"github.com/jhoicas/Reparaciones-api/internal/domain/entity"
)

type LifecycleSuite struct {
	suite.Suite
	f      *apptest.Fixture
	client domain.Actor
	part   string
}

func TestLifecycleSuite(t *testing.T) {
	suite.Run(t, new(LifecycleSuite))
}

func (s *LifecycleSuite) SetupTest() {
	s.f = apptest.New(s.T())
	s.client = s.f.Client()
	s.part = s.f.Part("Pantalla", 5, "100.00")
}

func (s *LifecycleSuite) newOrder() string {
	o, err := s.f.Orders.Create(s.f.Ctx, s.f.Office, dto.CreateOrderRequest{
		ClientID: s.client.ID, DeviceDescription: "Portátil", ProblemDescription: "No enciende",
	})
	s.Require().NoError(err)
	return o.ID
}

func (s *LifecycleSuite) TestCreate() {
	o, err := s.f.Orders.Create(s.f.Ctx, s.f.Office, dto.CreateOrderRequest{
		ClientID: s.client.ID, DeviceDescription: " Portátil ", ProblemDescription: "No enciende",
	})
	s.Require().NoError(err)
	s.Equal(string(entity.StatusNew), o.Status)
	s.Equal("Portátil", o.DeviceDescription)
	s.Regexp(`^RO-\d{6}$`, o.Number)

	second := s.newOrder()
	got, err := s.f.Orders.Get(s.f.Ctx, s.f.Office, second)
	s.Require().NoError(err)
	s.NotEqual(o.Number, got.Number)

	_, err = s.f.Orders.Create(s.f.Ctx, s.f.Tech, dto.CreateOrderRequest{})
	s.ErrorIs(err, domain.ErrForbidden)
	_, err = s.f.Orders.Create(s.f.Ctx, s.f.Office, dto.CreateOrderRequest{ClientID: s.client.ID})
	s.ErrorIs(err, domain.ErrValidation)
	_, err = s.f.Orders.Create(s.f.Ctx, s.f.Office, dto.CreateOrderRequest{
		ClientID: "no-existe", DeviceDescription: "x", ProblemDescription: "y",
	})
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *LifecycleSuite) TestAssignRequiresTechnician() {
	id := s.newOrder()

	_, err := s.f.Orders.AssignTechnician(s.f.Ctx, s.f.Office, id, s.f.Tech.ID)
	s.ErrorIs(err, domain.ErrForbidden)
	_, err = s.f.Orders.AssignTechnician(s.f.Ctx, s.f.Manager, id, s.f.Warehouse.ID)
	s.ErrorIs(err, domain.ErrInvalidTransition)
	s.Equal(entity.StatusNew, s.f.Status(id))

	o, err := s.f.Orders.AssignTechnician(s.f.Ctx, s.f.Manager, id, s.f.Tech.ID)
	s.Require().NoError(err)
	s.Equal(s.f.Tech.ID, o.TechnicianID)
	s.Equal(string(entity.StatusWaitingForTechnician), o.Status)

	// no se reasigna fuera de NEW
	_, err = s.f.Orders.AssignTechnician(s.f.Ctx, s.f.Manager, id, s.f.Tech.ID)
	s.ErrorIs(err, domain.ErrInvalidTransition)
}

func (s *LifecycleSuite) TestOnlyAssignedTechnicianActs() {
	id := s.newOrder()
	_, err := s.f.Orders.AssignTechnician(s.f.Ctx, s.f.Manager, id, s.f.Tech.ID)
	s.Require().NoError(err)

	other := s.f.Employee(entity.RoleTechnician)
	_, err = s.f.Orders.StartDiagnosis(s.f.Ctx, other, id)
	s.ErrorIs(err, domain.ErrForbidden)
	s.Equal(entity.StatusWaitingForTechnician, s.f.Status(id))

	o, err := s.f.Orders.StartDiagnosis(s.f.Ctx, s.f.Tech, id)
	s.Require().NoError(err)
	s.NotNil(o.StartDate)
}

func (s *LifecycleSuite) TestMarkUnrepairable() {
	id := s.f.Diagnosing(s.client)

	o, err := s.f.Orders.MarkUnrepairable(s.f.Ctx, s.f.Tech, id, "placa quemada")
	s.Require().NoError(err)
	s.Equal(string(entity.StatusCancelled), o.Status)
	s.Contains(o.DiagnosisNotes, "placa quemada")
	s.NotNil(o.EndDate)

	// terminal
	_, err = s.f.Orders.StartDiagnosis(s.f.Ctx, s.f.Tech, id)
	s.ErrorIs(err, domain.ErrInvalidTransition)
}

func (s *LifecycleSuite) TestConsumeAndFinish() {
	id, _ := s.f.Approved(s.client, []dto.EstimatePartInput{{PartID: s.part, Quantity: 3}})

	est, err := s.f.Orders.ConsumePart(s.f.Ctx, s.f.Tech, id, dto.ConsumePartRequest{PartID: s.part, Quantity: 2})
	s.Require().NoError(err)
	s.Equal(2, est.Parts[0].Consumed)
	s.Equal(3, s.f.Stock(s.part))

	// no más de lo presupuestado
	_, err = s.f.Orders.ConsumePart(s.f.Ctx, s.f.Tech, id, dto.ConsumePartRequest{PartID: s.part, Quantity: 2})
	s.ErrorIs(err, domain.ErrValidation)
	s.Equal(3, s.f.Stock(s.part))

	fin, err := s.f.Orders.FinishRepair(s.f.Ctx, s.f.Tech, id)
	s.Require().NoError(err)
	s.Equal(string(entity.StatusReadyForPickup), fin.Order.Status)
	s.Require().Len(fin.Warnings, 1)
	s.Contains(fin.Warnings[0], "Pantalla")

	_, err = s.f.Orders.ConsumePart(s.f.Ctx, s.f.Tech, id, dto.ConsumePartRequest{PartID: s.part, Quantity: 1})
	s.ErrorIs(err, domain.ErrInvalidTransition)
}

func (s *LifecycleSuite) TestConsumeInsufficientStock() {
	id, _ := s.f.Approved(s.client, []dto.EstimatePartInput{{PartID: s.part, Quantity: 2}})
	_, err := s.f.Ledger.Withdraw(s.f.Ctx, s.f.Warehouse, s.part, 4)
	s.Require().NoError(err)

	_, err = s.f.Orders.ConsumePart(s.f.Ctx, s.f.Tech, id, dto.ConsumePartRequest{PartID: s.part, Quantity: 2})
	s.ErrorIs(err, domain.ErrInsufficientStock)

	est, err := s.f.Estimates.GetActive(s.f.Ctx, s.f.Manager, id)
	s.Require().NoError(err)
	s.Equal(0, est.Parts[0].Consumed)
	s.Equal(1, s.f.Stock(s.part))
}

func (s *LifecycleSuite) TestRequestBackorderAndResume() {
	id, _ := s.f.Approved(s.client, []dto.EstimatePartInput{{PartID: s.part, Quantity: 2}})
	_, err := s.f.Ledger.Withdraw(s.f.Ctx, s.f.Warehouse, s.part, 5)
	s.Require().NoError(err)

	res, err := s.f.Orders.RequestBackorder(s.f.Ctx, s.f.Tech, id, nil)
	s.Require().NoError(err)
	s.Equal(string(entity.StatusWaitingForParts), res.Order.Status)
	s.Require().Len(res.Backorders, 1)
	s.Equal(2, res.Backorders[0].Quantity)

	rec, err := s.f.Ledger.Receive(s.f.Ctx, s.f.Warehouse, s.part, 2)
	s.Require().NoError(err)
	s.Equal([]string{id}, rec.PromotedOrders)

	// con presupuesto aprobado no se vuelve a diagnosticar
	_, err = s.f.Orders.StartDiagnosis(s.f.Ctx, s.f.Tech, id)
	s.ErrorIs(err, domain.ErrInvalidTransition)

	out, err := s.f.Orders.ResumeRepair(s.f.Ctx, s.f.Tech, id)
	s.Require().NoError(err)
	s.Equal(string(entity.StatusInProgress), out.Order.Status)
}

func (s *LifecycleSuite) TestWorkLogs() {
	id := s.f.Diagnosing(s.client)

	_, err := s.f.Orders.StartWork(s.f.Ctx, s.f.Tech, id)
	s.Require().NoError(err)
	_, err = s.f.Orders.StartWork(s.f.Ctx, s.f.Tech, id)
	s.ErrorIs(err, domain.ErrDuplicate)

	w, err := s.f.Orders.StopWork(s.f.Ctx, s.f.Tech, id)
	s.Require().NoError(err)
	s.NotNil(w.EndTime)
	_, err = s.f.Orders.StopWork(s.f.Ctx, s.f.Tech, id)
	s.ErrorIs(err, domain.ErrNotFound)

	logs, err := s.f.Orders.ListWorkLogs(s.f.Ctx, s.f.Manager, id)
	s.Require().NoError(err)
	s.Len(logs, 1)
}

func (s *LifecycleSuite) TestVisibility() {
	id := s.newOrder()

	_, err := s.f.Orders.Get(s.f.Ctx, s.client, id)
	s.NoError(err)
	_, err = s.f.Orders.Get(s.f.Ctx, s.f.Client(), id)
	s.ErrorIs(err, domain.ErrForbidden)

	mine, err := s.f.Orders.ListByClient(s.f.Ctx, s.client, s.client.ID)
	s.Require().NoError(err)
	s.Len(mine, 1)
	_, err = s.f.Orders.ListByClient(s.f.Ctx, s.client, s.f.Client().ID)
	s.ErrorIs(err, domain.ErrForbidden)

	all, err := s.f.Orders.ListAll(s.f.Ctx, s.f.Warehouse, dto.OrderListRequest{Status: string(entity.StatusNew)})
	s.Require().NoError(err)
	s.Len(all.Items, 1)
}
