package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/jhoicas/Reparaciones-api/internal/app"
	"github.com/jhoicas/Reparaciones-api/internal/application/auth"
	"github.com/jhoicas/Reparaciones-api/internal/application/dto"
	"github.com/jhoicas/Reparaciones-api/internal/application/ports"
	"github.com/jhoicas/Reparaciones-api/internal/infrastructure/memory"
	"github.com/jhoicas/Reparaciones-api/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/Reparaciones-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Reparaciones-api/internal/infrastructure/xlsx"
	apphttp "github.com/jhoicas/Reparaciones-api/internal/interfaces/http"
)

// pinCatcher guarda el último PIN enviado por teléfono.
type pinCatcher struct {
	mu   sync.Mutex
	pins map[string]string
}

func (p *pinCatcher) SendPIN(_ context.Context, phone, pin string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pins[phone] = pin
	return nil
}

func (p *pinCatcher) get(phone string) string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pins[phone]
}

var _ ports.PINSender = (*pinCatcher)(nil)

type RouterSuite struct {
	suite.Suite
	app       *fiber.App
	container *app.Container
	pins      *pinCatcher

	manager, office, tech, warehouse string // tokens
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	store := memory.NewStore()
	s.pins = &pinCatcher{pins: map[string]string{}}
	log := zerolog.Nop()
	s.container = app.New(app.Infra{
		Tx:       memory.NewTxRunner(store),
		Repos:    store.Repos(),
		Notifier: notify.NewLogNotifier(log),
		Metrics:  ports.NopMetrics{},
		PINs:     s.pins,
		Renderer: infrapdf.NewMarotoDocumentGenerator(),
		Sheets:   xlsx.NewOrdersWriter(),
	}, app.Settings{
		JWT:            auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer},
		DocumentPrefix: "FV",
		ShopName:       "Taller de prueba",
	}, log)

	s.app = fiber.New()
	apphttp.Router(s.app, s.container.RouterDeps())

	_, created, err := s.container.Employees.Bootstrap(context.Background(), dto.CreateEmployeeRequest{
		FirstName: "Gerente", LastName: "Uno", Email: "gerente@taller.test", Password: "clave-segura-1",
	})
	s.Require().NoError(err)
	s.Require().True(created)
	s.manager = s.login("gerente@taller.test", "clave-segura-1")

	s.office = s.hire("recepcion@taller.test", "OFFICE")
	s.tech = s.hire("tecnico@taller.test", "TECHNICIAN")
	s.warehouse = s.hire("bodega@taller.test", "WAREHOUSE")
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (s *RouterSuite) do(method, path, token string, body any) *http.Response {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		s.Require().NoError(err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	s.Require().NoError(err)
	return resp
}

func (s *RouterSuite) decode(resp *http.Response, wantStatus int, out any) {
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	s.Require().Equal(wantStatus, resp.StatusCode, string(raw))
	if out != nil {
		s.Require().NoError(json.Unmarshal(raw, out))
	}
}

func (s *RouterSuite) login(email, password string) string {
	var out dto.LoginResponse
	s.decode(s.do(http.MethodPost, "/api/auth/login", "", dto.EmployeeLoginRequest{Email: email, Password: password}), http.StatusOK, &out)
	return out.Token
}

func (s *RouterSuite) hire(email, role string) string {
	s.decode(s.do(http.MethodPost, "/api/employees", s.manager, dto.CreateEmployeeRequest{
		FirstName: role, LastName: "Prueba", Email: email, Password: "clave-segura-1", Role: role,
	}), http.StatusCreated, nil)
	return s.login(email, "clave-segura-1")
}

// ── tests ─────────────────────────────────────────────────────────────────────

var pathParam = regexp.MustCompile(`:(\w+)`)

// Cada ruta registrada tiene su operación en docs/swagger.json y viceversa.
func (s *RouterSuite) TestSwaggerMatchesRoutes() {
	raw, err := os.ReadFile("../../../docs/swagger.json")
	s.Require().NoError(err)
	var doc struct {
		Swagger string                                `json:"swagger"`
		Paths   map[string]map[string]json.RawMessage `json:"paths"`
	}
	s.Require().NoError(json.Unmarshal(raw, &doc))
	s.Equal("2.0", doc.Swagger)

	documented := map[string]bool{}
	for path, ops := range doc.Paths {
		for verb := range ops {
			documented[strings.ToUpper(verb)+" "+path] = true
		}
	}
	registered := map[string]bool{}
	for _, r := range s.app.GetRoutes(true) {
		if r.Method == fiber.MethodHead || r.Path == "/metrics" {
			continue
		}
		path := pathParam.ReplaceAllString(strings.TrimSuffix(r.Path, "/"), "{$1}")
		registered[r.Method+" "+path] = true
	}
	s.Equal(documented, registered)
}

func (s *RouterSuite) TestFullRepairFlow() {
	var client dto.ClientResponse
	s.decode(s.do(http.MethodPost, "/api/clients", s.office, dto.CreateClientRequest{
		FirstName: "Ana", LastName: "Pérez", Phone: "3001234567",
	}), http.StatusCreated, &client)
	pin := s.pins.get(client.Phone)
	s.Require().NotEmpty(pin)

	var clientLogin dto.LoginResponse
	s.decode(s.do(http.MethodPost, "/api/auth/client-login", "", dto.ClientLoginRequest{Phone: client.Phone, PIN: pin}), http.StatusOK, &clientLogin)
	clientToken := clientLogin.Token

	var part dto.SparePartResponse
	s.decode(s.do(http.MethodPost, "/api/parts", s.warehouse, dto.CreateSparePartRequest{
		Name: "Pantalla", Category: "display", Quantity: 5, MinQuantity: 1, Price: decimal.RequireFromString("100.00"),
	}), http.StatusCreated, &part)

	var action dto.ServiceActionResponse
	s.decode(s.do(http.MethodPost, "/api/service-actions", s.manager, dto.ServiceActionRequest{
		Name: "Cambio de pantalla", Price: decimal.RequireFromString("550.00"),
	}), http.StatusCreated, &action)

	var o dto.RepairOrderResponse
	s.decode(s.do(http.MethodPost, "/api/orders", s.office, dto.CreateOrderRequest{
		ClientID: client.ID, DeviceDescription: "Celular", ProblemDescription: "Pantalla rota",
	}), http.StatusCreated, &o)
	s.Equal("NEW", o.Status)
	base := "/api/orders/" + o.ID

	var techs []dto.EmployeeResponse
	s.decode(s.do(http.MethodGet, "/api/employees?role=TECHNICIAN", s.manager, nil), http.StatusOK, &techs)
	s.Require().Len(techs, 1)

	s.decode(s.do(http.MethodPost, base+"/assign", s.manager, dto.AssignTechnicianRequest{TechnicianID: techs[0].ID}), http.StatusOK, &o)
	s.Equal("WAITING_FOR_TECHNICIAN", o.Status)

	s.decode(s.do(http.MethodPost, base+"/diagnosis", s.tech, nil), http.StatusOK, &o)
	s.Equal("DIAGNOSING", o.Status)

	var est dto.CostEstimateResponse
	s.decode(s.do(http.MethodPost, base+"/estimates", s.tech, dto.CreateEstimateRequest{
		Parts:     []dto.EstimatePartInput{{PartID: part.ID, Quantity: 2}},
		ActionIDs: []string{action.ID},
	}), http.StatusCreated, &est)
	s.True(est.TotalCost.Equal(decimal.RequireFromString("750.00")), est.TotalCost.String())

	approved := true
	var decision dto.DecisionResponse
	s.decode(s.do(http.MethodPost, base+"/estimate/decision", clientToken, dto.DecideEstimateRequest{Approved: &approved}), http.StatusOK, &decision)
	s.Equal("IN_PROGRESS", decision.Order.Status)

	// una segunda decisión no cambia nada
	s.decode(s.do(http.MethodPost, base+"/estimate/decision", clientToken, dto.DecideEstimateRequest{Approved: &approved}), http.StatusConflict, nil)

	s.decode(s.do(http.MethodPost, base+"/consume", s.tech, dto.ConsumePartRequest{PartID: part.ID, Quantity: 2}), http.StatusOK, nil)

	var fin dto.FinishRepairResponse
	s.decode(s.do(http.MethodPost, base+"/finish", s.tech, nil), http.StatusOK, &fin)
	s.Equal("READY_FOR_PICKUP", fin.Order.Status)
	s.Empty(fin.Warnings)

	var inv dto.InvoiceResponse
	s.decode(s.do(http.MethodPost, base+"/settle", clientToken, dto.SettleRequest{PaymentMethod: "card"}), http.StatusCreated, &inv)
	s.True(inv.Amount.Equal(decimal.RequireFromString("750.00")))
	s.Equal("CARD", inv.PaymentMethod)
	s.Equal("PAID", inv.Status)

	s.decode(s.do(http.MethodPost, base+"/settle", clientToken, dto.SettleRequest{PaymentMethod: "CARD"}), http.StatusConflict, nil)

	resp := s.do(http.MethodGet, base+"/document", clientToken, nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("application/pdf", resp.Header.Get("Content-Type"))
	pdf, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	s.True(bytes.HasPrefix(pdf, []byte("%PDF")))

	var summary dto.StatusSummary
	s.decode(s.do(http.MethodGet, "/api/reports/summary", s.manager, nil), http.StatusOK, &summary)
	s.Equal(1, summary.Counts["COMPLETED"])
	s.Equal(0, summary.Open)

	var stock dto.SparePartResponse
	s.decode(s.do(http.MethodGet, "/api/parts/"+part.ID, s.warehouse, nil), http.StatusOK, &stock)
	s.Equal(3, stock.Quantity)
}

func (s *RouterSuite) TestClientCannotSeeOtherClientsOrder() {
	var a, b dto.ClientResponse
	s.decode(s.do(http.MethodPost, "/api/clients", s.office, dto.CreateClientRequest{FirstName: "A", LastName: "Uno", Phone: "3000000001"}), http.StatusCreated, &a)
	s.decode(s.do(http.MethodPost, "/api/clients", s.office, dto.CreateClientRequest{FirstName: "B", LastName: "Dos", Phone: "3000000002"}), http.StatusCreated, &b)

	var o dto.RepairOrderResponse
	s.decode(s.do(http.MethodPost, "/api/orders", s.office, dto.CreateOrderRequest{
		ClientID: a.ID, DeviceDescription: "Tablet", ProblemDescription: "No enciende",
	}), http.StatusCreated, &o)

	var login dto.LoginResponse
	s.decode(s.do(http.MethodPost, "/api/auth/client-login", "", dto.ClientLoginRequest{Phone: b.Phone, PIN: s.pins.get(b.Phone)}), http.StatusOK, &login)

	s.decode(s.do(http.MethodGet, "/api/orders/"+o.ID, login.Token, nil), http.StatusForbidden, nil)

	var mine []dto.RepairOrderResponse
	s.decode(s.do(http.MethodGet, "/api/me/orders", login.Token, nil), http.StatusOK, &mine)
	s.Empty(mine)
}

func (s *RouterSuite) TestErrorMapping() {
	// sin token
	s.decode(s.do(http.MethodGet, "/api/orders", "", nil), http.StatusUnauthorized, nil)
	// rol sin permiso
	s.decode(s.do(http.MethodPost, "/api/orders", s.tech, dto.CreateOrderRequest{}), http.StatusForbidden, nil)
	// id que no es uuid
	var e dto.ErrorResponse
	s.decode(s.do(http.MethodGet, "/api/orders/no-es-uuid", s.office, nil), http.StatusBadRequest, &e)
	s.Equal("VALIDATION", e.Code)
	// no existe
	s.decode(s.do(http.MethodGet, "/api/orders/00000000-0000-0000-0000-00000000abcd", s.office, nil), http.StatusNotFound, &e)
	s.Equal("NOT_FOUND", e.Code)
	// transición inválida: diagnosticar una orden sin técnico
	var c dto.ClientResponse
	s.decode(s.do(http.MethodPost, "/api/clients", s.office, dto.CreateClientRequest{FirstName: "C", LastName: "Tres", Phone: "3000000003"}), http.StatusCreated, &c)
	var o dto.RepairOrderResponse
	s.decode(s.do(http.MethodPost, "/api/orders", s.office, dto.CreateOrderRequest{
		ClientID: c.ID, DeviceDescription: "Laptop", ProblemDescription: "Teclado",
	}), http.StatusCreated, &o)
	s.decode(s.do(http.MethodPost, "/api/orders/"+o.ID+"/finish", s.tech, nil), http.StatusConflict, nil)
	// retiro mayor al stock
	var p dto.SparePartResponse
	s.decode(s.do(http.MethodPost, "/api/parts", s.warehouse, dto.CreateSparePartRequest{Name: "Batería", Quantity: 1, Price: decimal.NewFromInt(20)}), http.StatusCreated, &p)
	s.decode(s.do(http.MethodPost, "/api/parts/"+p.ID+"/withdraw", s.warehouse, dto.StockQuantityRequest{Quantity: 2}), http.StatusConflict, &e)
	s.Equal("INSUFFICIENT_STOCK", e.Code)
}

func (s *RouterSuite) TestExportOrders() {
	resp := s.do(http.MethodGet, "/api/reports/orders.xlsx", s.manager, nil)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Contains(resp.Header.Get("Content-Disposition"), ".xlsx")

	s.decode(s.do(http.MethodGet, "/api/reports/orders.xlsx", s.office, nil), http.StatusForbidden, nil)
}

func TestRouterWithoutMetricsHandler(t *testing.T) {
	store := memory.NewStore()
	c := app.New(app.Infra{Tx: memory.NewTxRunner(store), Repos: store.Repos()}, app.Settings{
		JWT: auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60},
	}, zerolog.Nop())
	a := fiber.New()
	apphttp.Router(a, c.RouterDeps())

	resp, err := a.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
