package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sokebat/barber-frontend-sub000/internal/domain/entities"
	"github.com/sokebat/barber-frontend-sub000/internal/domain/repositories"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Status  int             `json:"status"`
	Error   string          `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, v interface{}) envelope {
	t.Helper()
	env := decodeEnvelope(t, w)
	require.NoError(t, json.Unmarshal(env.Data, v))
	return env
}

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func result[T any](args mock.Arguments) (T, error) {
	var zero T
	if args.Get(0) == nil {
		return zero, args.Error(1)
	}
	return args.Get(0).(T), args.Error(1)
}

type MockAppointmentService struct {
	mock.Mock
}

func (m *MockAppointmentService) Create(ctx context.Context, req *entities.CreateAppointmentRequest) (*entities.Appointment, error) {
	return result[*entities.Appointment](m.Called(ctx, req))
}

func (m *MockAppointmentService) GetByID(ctx context.Context, id string) (*entities.Appointment, error) {
	return result[*entities.Appointment](m.Called(ctx, id))
}

func (m *MockAppointmentService) List(ctx context.Context, filter repositories.AppointmentFilter) ([]*entities.Appointment, error) {
	return result[[]*entities.Appointment](m.Called(ctx, filter))
}

func (m *MockAppointmentService) Mine(ctx context.Context) ([]*entities.Appointment, error) {
	return result[[]*entities.Appointment](m.Called(ctx))
}

func (m *MockAppointmentService) Update(ctx context.Context, id string, update *entities.Appointment) (*entities.Appointment, error) {
	return result[*entities.Appointment](m.Called(ctx, id, update))
}

func (m *MockAppointmentService) Approve(ctx context.Context, id string, approved bool) (*entities.Appointment, error) {
	return result[*entities.Appointment](m.Called(ctx, id, approved))
}

func (m *MockAppointmentService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAppointmentService) Availability(ctx context.Context, specialist, date string) (*entities.Availability, error) {
	return result[*entities.Availability](m.Called(ctx, specialist, date))
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req *entities.RegisterRequest) (*entities.User, error) {
	return result[*entities.User](m.Called(ctx, req))
}

func (m *MockAuthService) Login(ctx context.Context, req *entities.LoginRequest) (*entities.AuthResult, error) {
	return result[*entities.AuthResult](m.Called(ctx, req))
}

func (m *MockAuthService) Me(ctx context.Context) (*entities.User, error) {
	return result[*entities.User](m.Called(ctx))
}

type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) Create(ctx context.Context, c *entities.Category) (*entities.Category, error) {
	return result[*entities.Category](m.Called(ctx, c))
}

func (m *MockCategoryService) GetByID(ctx context.Context, id string) (*entities.Category, error) {
	return result[*entities.Category](m.Called(ctx, id))
}

func (m *MockCategoryService) List(ctx context.Context) ([]*entities.Category, error) {
	return result[[]*entities.Category](m.Called(ctx))
}

func (m *MockCategoryService) Update(ctx context.Context, id string, c *entities.Category) (*entities.Category, error) {
	return result[*entities.Category](m.Called(ctx, id, c))
}

func (m *MockCategoryService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) Create(ctx context.Context, p *entities.Product) (*entities.Product, error) {
	return result[*entities.Product](m.Called(ctx, p))
}

func (m *MockProductService) GetByID(ctx context.Context, id string) (*entities.Product, error) {
	return result[*entities.Product](m.Called(ctx, id))
}

func (m *MockProductService) List(ctx context.Context, filter repositories.ProductFilter) ([]*entities.Product, error) {
	return result[[]*entities.Product](m.Called(ctx, filter))
}

func (m *MockProductService) Update(ctx context.Context, id string, p *entities.Product) (*entities.Product, error) {
	return result[*entities.Product](m.Called(ctx, id, p))
}

func (m *MockProductService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductService) Search(ctx context.Context, params repositories.ProductSearchParams) (*repositories.ProductSearchResult, error) {
	return result[*repositories.ProductSearchResult](m.Called(ctx, params))
}

type MockServiceCatalogService struct {
	mock.Mock
}

func (m *MockServiceCatalogService) Create(ctx context.Context, c *entities.ServiceCategory) (*entities.ServiceCategory, error) {
	return result[*entities.ServiceCategory](m.Called(ctx, c))
}

func (m *MockServiceCatalogService) GetByID(ctx context.Context, id string) (*entities.ServiceCategory, error) {
	return result[*entities.ServiceCategory](m.Called(ctx, id))
}

func (m *MockServiceCatalogService) List(ctx context.Context) ([]*entities.ServiceCategory, error) {
	return result[[]*entities.ServiceCategory](m.Called(ctx))
}

func (m *MockServiceCatalogService) ListFlat(ctx context.Context) ([]entities.UIService, error) {
	return result[[]entities.UIService](m.Called(ctx))
}

func (m *MockServiceCatalogService) Update(ctx context.Context, id string, c *entities.ServiceCategory) (*entities.ServiceCategory, error) {
	return result[*entities.ServiceCategory](m.Called(ctx, id, c))
}

func (m *MockServiceCatalogService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockServiceCatalogService) AddItem(ctx context.Context, categoryID string, item *entities.ServiceItem) (*entities.ServiceCategory, error) {
	return result[*entities.ServiceCategory](m.Called(ctx, categoryID, item))
}

func (m *MockServiceCatalogService) UpdateItem(ctx context.Context, categoryID, itemID string, item *entities.ServiceItem) (*entities.ServiceCategory, error) {
	return result[*entities.ServiceCategory](m.Called(ctx, categoryID, itemID, item))
}

func (m *MockServiceCatalogService) DeleteItem(ctx context.Context, categoryID, itemID string) (*entities.ServiceCategory, error) {
	return result[*entities.ServiceCategory](m.Called(ctx, categoryID, itemID))
}

type MockTeamService struct {
	mock.Mock
}

func (m *MockTeamService) Create(ctx context.Context, t *entities.TeamMember) (*entities.TeamMember, error) {
	return result[*entities.TeamMember](m.Called(ctx, t))
}

func (m *MockTeamService) GetByID(ctx context.Context, id string) (*entities.TeamMember, error) {
	return result[*entities.TeamMember](m.Called(ctx, id))
}

func (m *MockTeamService) List(ctx context.Context) ([]*entities.TeamMember, error) {
	return result[[]*entities.TeamMember](m.Called(ctx))
}

func (m *MockTeamService) Update(ctx context.Context, id string, t *entities.TeamMember) (*entities.TeamMember, error) {
	return result[*entities.TeamMember](m.Called(ctx, id, t))
}

func (m *MockTeamService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) Checkout(ctx context.Context, req *entities.CheckoutRequest) (*entities.Order, error) {
	return result[*entities.Order](m.Called(ctx, req))
}

func (m *MockCheckoutService) Mine(ctx context.Context) ([]*entities.Order, error) {
	return result[[]*entities.Order](m.Called(ctx))
}
