package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outdoor-rental-backend/internal/domain"
	"outdoor-rental-backend/internal/security"
	"outdoor-rental-backend/internal/service"
	"outdoor-rental-backend/internal/storage"
)

// fakeEquipmentService lets each test plug in just the calls it needs.
type fakeEquipmentService struct {
	list         func(ctx context.Context) ([]domain.Equipment, error)
	get          func(ctx context.Context, id int32) (*domain.Equipment, error)
	create       func(ctx context.Context, eq *domain.Equipment) error
	update       func(ctx context.Context, eq *domain.Equipment) error
	delete       func(ctx context.Context, id int32) error
	reorder      func(ctx context.Context, updates []domain.SortOrderUpdate) error
	availableQty func(ctx context.Context, id int32, from, to string) (int32, error)
}

func (f *fakeEquipmentService) ListEquipment(ctx context.Context) ([]domain.Equipment, error) {
	return f.list(ctx)
}
func (f *fakeEquipmentService) GetEquipment(ctx context.Context, id int32) (*domain.Equipment, error) {
	return f.get(ctx, id)
}
func (f *fakeEquipmentService) CreateEquipment(ctx context.Context, eq *domain.Equipment) error {
	return f.create(ctx, eq)
}
func (f *fakeEquipmentService) UpdateEquipment(ctx context.Context, eq *domain.Equipment) error {
	return f.update(ctx, eq)
}
func (f *fakeEquipmentService) DeleteEquipment(ctx context.Context, id int32) error {
	return f.delete(ctx, id)
}
func (f *fakeEquipmentService) ReorderEquipment(ctx context.Context, updates []domain.SortOrderUpdate) error {
	return f.reorder(ctx, updates)
}
func (f *fakeEquipmentService) GetAvailableQuantity(ctx context.Context, id int32, from, to string) (int32, error) {
	return f.availableQty(ctx, id, from, to)
}
func (f *fakeEquipmentService) CheckAvailability(ctx context.Context, id int32, from, to string, quantity int32) (bool, error) {
	available, err := f.availableQty(ctx, id, from, to)
	return available >= quantity, err
}

type fakeReservationService struct {
	checkout      func(ctx context.Context, contact domain.ContactInfo, cart []domain.CartItem) (*service.CheckoutResult, error)
	get           func(ctx context.Context, id int32) (*domain.Reservation, error)
	byOrderNumber func(ctx context.Context, orderNumber string) (*domain.Reservation, error)
	list          func(ctx context.Context) ([]domain.Reservation, error)
	updatePeriod  func(ctx context.Context, id int32, from, to string, quantity int32) (*domain.Reservation, error)
	updateStatus  func(ctx context.Context, id int32, status domain.ReservationStatus) (*domain.Reservation, error)
	replaceItems  func(ctx context.Context, id int32, edits []service.ItemEdit) ([]domain.ReservationItem, error)
	delete        func(ctx context.Context, id int32) error
	calendar      func(ctx context.Context, equipmentID int32) ([]domain.ReservationItem, error)
	contract      func(ctx context.Context, id int32) ([]byte, error)
}

func (f *fakeReservationService) Checkout(ctx context.Context, contact domain.ContactInfo, cart []domain.CartItem) (*service.CheckoutResult, error) {
	return f.checkout(ctx, contact, cart)
}
func (f *fakeReservationService) GetReservation(ctx context.Context, id int32) (*domain.Reservation, error) {
	return f.get(ctx, id)
}
func (f *fakeReservationService) GetByOrderNumber(ctx context.Context, orderNumber string) (*domain.Reservation, error) {
	return f.byOrderNumber(ctx, orderNumber)
}
func (f *fakeReservationService) ListReservations(ctx context.Context) ([]domain.Reservation, error) {
	return f.list(ctx)
}
func (f *fakeReservationService) UpdatePeriod(ctx context.Context, id int32, from, to string, quantity int32) (*domain.Reservation, error) {
	return f.updatePeriod(ctx, id, from, to, quantity)
}
func (f *fakeReservationService) UpdateStatus(ctx context.Context, id int32, status domain.ReservationStatus) (*domain.Reservation, error) {
	return f.updateStatus(ctx, id, status)
}
func (f *fakeReservationService) ReplaceItems(ctx context.Context, id int32, edits []service.ItemEdit) ([]domain.ReservationItem, error) {
	return f.replaceItems(ctx, id, edits)
}
func (f *fakeReservationService) DeleteReservation(ctx context.Context, id int32) error {
	return f.delete(ctx, id)
}
func (f *fakeReservationService) EquipmentCalendar(ctx context.Context, equipmentID int32) ([]domain.ReservationItem, error) {
	return f.calendar(ctx, equipmentID)
}
func (f *fakeReservationService) BuildContract(ctx context.Context, id int32) ([]byte, error) {
	return f.contract(ctx, id)
}
func (f *fakeReservationService) SyncStatuses(ctx context.Context) (int, error) {
	return 0, nil
}
func (f *fakeReservationService) SendReturnReminders(ctx context.Context) (int, error) {
	return 0, nil
}

type fakeAuthService struct {
	login func(ctx context.Context, username, password string) (string, error)
}

func (f *fakeAuthService) Login(ctx context.Context, username, password string) (string, error) {
	return f.login(ctx, username, password)
}

type routerFixture struct {
	router http.Handler
	tokens security.TokenManager
}

func newRouterFixture(t *testing.T, equipment service.EquipmentService, reservations service.ReservationService, auth service.AuthService) *routerFixture {
	t.Helper()
	tokens := security.NewTokenManager("router-test-key", 60)
	images, err := storage.NewImageStore("/uploads", t.TempDir())
	require.NoError(t, err)

	return &routerFixture{
		router: NewRouter(RouterDeps{
			Equipment:    equipment,
			Reservations: reservations,
			Auth:         auth,
			Tokens:       tokens,
			Images:       images,
			MaxFileSize:  5 << 20,
		}),
		tokens: tokens,
	}
}

func (f *routerFixture) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *routerFixture) adminToken(t *testing.T) string {
	t.Helper()
	token, err := f.tokens.GenerateAdminToken("admin")
	require.NoError(t, err)
	return token
}

func TestEquipmentList(t *testing.T) {
	equipment := &fakeEquipmentService{
		list: func(ctx context.Context) ([]domain.Equipment, error) {
			return []domain.Equipment{{ID: 1, Name: "Tent", Stock: 3}}, nil
		},
	}
	f := newRouterFixture(t, equipment, &fakeReservationService{}, &fakeAuthService{})

	rec := f.do(t, "GET", "/api/equipment", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var list []domain.Equipment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Tent", list[0].Name)
}

func TestAvailabilityEndpoint(t *testing.T) {
	equipment := &fakeEquipmentService{
		availableQty: func(ctx context.Context, id int32, from, to string) (int32, error) {
			assert.Equal(t, int32(7), id)
			return 2, nil
		},
	}
	f := newRouterFixture(t, equipment, &fakeReservationService{}, &fakeAuthService{})

	rec := f.do(t, "POST", "/api/equipment/7/availability",
		map[string]any{"dateFrom": "2026-07-01", "dateTo": "2026-07-03", "quantity": 3}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp availabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Available)
	assert.Equal(t, int32(2), resp.AvailableQuantity)
}

func TestAvailabilityEndpoint_InvalidRange(t *testing.T) {
	equipment := &fakeEquipmentService{
		availableQty: func(ctx context.Context, id int32, from, to string) (int32, error) {
			return 0, fmt.Errorf("%w: bad range", service.ErrInvalidInput)
		},
	}
	f := newRouterFixture(t, equipment, &fakeReservationService{}, &fakeAuthService{})

	rec := f.do(t, "POST", "/api/equipment/7/availability",
		map[string]any{"dateFrom": "2026-07-09", "dateTo": "2026-07-03"}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "bad range")
}

func TestCheckoutEndpoint(t *testing.T) {
	reservations := &fakeReservationService{
		checkout: func(ctx context.Context, contact domain.ContactInfo, cart []domain.CartItem) (*service.CheckoutResult, error) {
			assert.Equal(t, "Jana Novak", contact.CustomerName)
			require.Len(t, cart, 1)
			return &service.CheckoutResult{
				Reservation: &domain.Reservation{ID: 1, OrderNumber: "P2026001", TotalPrice: 250},
				Items:       []domain.ReservationItem{{ID: 1, ReservationID: 1}},
				PaymentQR:   "SPD*1.0*ACC:CZ65*AM:250.00*CC:CZK",
			}, nil
		},
	}
	f := newRouterFixture(t, &fakeEquipmentService{}, reservations, &fakeAuthService{})

	rec := f.do(t, "POST", "/api/reservations", map[string]any{
		"customerName":    "Jana Novak",
		"customerEmail":   "jana@example.com",
		"customerPhone":   "+420777123456",
		"customerAddress": "Main Street 1",
		"pickupLocation":  "warehouse",
		"cartItems": []map[string]any{
			{"equipmentId": 1, "dateFrom": "2026-07-01", "dateTo": "2026-07-02", "quantity": 1},
		},
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp checkoutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "P2026001", resp.Reservation.OrderNumber)
	assert.True(t, strings.HasPrefix(resp.QRCode, "data:image/png;base64,"))
}

func TestCheckoutEndpoint_Unavailable(t *testing.T) {
	reservations := &fakeReservationService{
		checkout: func(ctx context.Context, contact domain.ContactInfo, cart []domain.CartItem) (*service.CheckoutResult, error) {
			return nil, fmt.Errorf("%w: Tent for 2026-07-01 to 2026-07-02", service.ErrUnavailable)
		},
	}
	f := newRouterFixture(t, &fakeEquipmentService{}, reservations, &fakeAuthService{})

	rec := f.do(t, "POST", "/api/reservations", map[string]any{
		"customerName": "Jana Novak",
		"cartItems":    []map[string]any{{"equipmentId": 1}},
	}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "not available")
}

func TestOrderLookup_NotFound(t *testing.T) {
	reservations := &fakeReservationService{
		byOrderNumber: func(ctx context.Context, orderNumber string) (*domain.Reservation, error) {
			return nil, service.ErrNotFound
		},
	}
	f := newRouterFixture(t, &fakeEquipmentService{}, reservations, &fakeAuthService{})

	rec := f.do(t, "GET", "/api/reservations/order/P2026999", nil, "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "not found", resp.Message)
}

func TestAdminRoutesRequireToken(t *testing.T) {
	reservations := &fakeReservationService{
		list: func(ctx context.Context) ([]domain.Reservation, error) {
			return []domain.Reservation{{ID: 1, Status: domain.ReservationStatusPending}}, nil
		},
	}
	f := newRouterFixture(t, &fakeEquipmentService{}, reservations, &fakeAuthService{})

	t.Run("missing token", func(t *testing.T) {
		rec := f.do(t, "GET", "/api/reservations", nil, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := f.do(t, "GET", "/api/reservations", nil, "not-a-jwt")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		rec := f.do(t, "GET", "/api/reservations", nil, f.adminToken(t))
		require.Equal(t, http.StatusOK, rec.Code)

		var list []domain.Reservation
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
		require.Len(t, list, 1)
	})
}

func TestLoginEndpoint(t *testing.T) {
	auth := &fakeAuthService{
		login: func(ctx context.Context, username, password string) (string, error) {
			if username == "admin" && password == "s3cret" {
				return "signed-token", nil
			}
			return "", service.ErrUnauthorized
		},
	}
	f := newRouterFixture(t, &fakeEquipmentService{}, &fakeReservationService{}, auth)

	t.Run("success", func(t *testing.T) {
		rec := f.do(t, "POST", "/api/auth/login",
			map[string]string{"username": "admin", "password": "s3cret"}, "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "signed-token")
	})

	t.Run("bad credentials", func(t *testing.T) {
		rec := f.do(t, "POST", "/api/auth/login",
			map[string]string{"username": "admin", "password": "wrong"}, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := f.do(t, "POST", "/api/auth/login", map[string]string{}, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthStatusEndpoint(t *testing.T) {
	f := newRouterFixture(t, &fakeEquipmentService{}, &fakeReservationService{}, &fakeAuthService{})

	rec := f.do(t, "GET", "/api/auth/status", nil, f.adminToken(t))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"admin"`)
}

func TestUpdateStatusEndpoint(t *testing.T) {
	reservations := &fakeReservationService{
		updateStatus: func(ctx context.Context, id int32, status domain.ReservationStatus) (*domain.Reservation, error) {
			if status != domain.ReservationStatusReturned {
				return nil, fmt.Errorf("%w: unknown status", service.ErrInvalidInput)
			}
			return &domain.Reservation{ID: id, Status: status}, nil
		},
	}
	f := newRouterFixture(t, &fakeEquipmentService{}, reservations, &fakeAuthService{})
	token := f.adminToken(t)

	rec := f.do(t, "PATCH", "/api/reservations/3/status",
		map[string]string{"status": "returned"}, token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"returned"`)

	rec = f.do(t, "PATCH", "/api/reservations/3/status",
		map[string]string{"status": "shipped"}, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContractEndpoint(t *testing.T) {
	reservations := &fakeReservationService{
		contract: func(ctx context.Context, id int32) ([]byte, error) {
			return []byte("%PDF-1.3 fake"), nil
		},
	}
	f := newRouterFixture(t, &fakeEquipmentService{}, reservations, &fakeAuthService{})

	rec := f.do(t, "POST", "/api/reservations/3/contract", nil, f.adminToken(t))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))
}

func TestUploadEndpoint(t *testing.T) {
	f := newRouterFixture(t, &fakeEquipmentService{}, &fakeReservationService{}, &fakeAuthService{})
	token := f.adminToken(t)

	upload := func(t *testing.T, filename string) *httptest.ResponseRecorder {
		t.Helper()
		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		part, err := writer.CreateFormFile("image", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		require.NoError(t, err)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest("POST", "/api/upload-image", &buf)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("accepted", func(t *testing.T) {
		rec := upload(t, "tent.png")
		require.Equal(t, http.StatusCreated, rec.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, strings.HasPrefix(resp["imageUrl"], "/uploads/"))

		// The stored file is immediately servable.
		name := strings.TrimPrefix(resp["imageUrl"], "/uploads/")
		get := f.do(t, "GET", "/uploads/"+name, nil, "")
		assert.Equal(t, http.StatusOK, get.Code)
		assert.Equal(t, "image/png", get.Header().Get("Content-Type"))
	})

	t.Run("unsupported type", func(t *testing.T) {
		rec := upload(t, "malware.exe")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("requires auth", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/upload-image", nil)
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
