package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/daycare-scheduler/internal/auth"
	"github.com/BruksfildServices01/daycare-scheduler/internal/handlers"
	"github.com/BruksfildServices01/daycare-scheduler/internal/httperr"
	"github.com/BruksfildServices01/daycare-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/daycare-scheduler/internal/timezone"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type denyAll struct{}

func (denyAll) Allow(context.Context, string) bool { return false }

type api struct {
	t *testing.T
	r *gin.Engine
}

func newAPI(t *testing.T, mutate func(*Deps)) *api {
	t.Helper()
	d := Deps{
		Store:  repository.NewMemoryStore(),
		Tokens: auth.NewTokenIssuer("0123456789abcdef0123", time.Hour),
		Clock:  timezone.FixedClock(time.Date(2030, 5, 10, 7, 0, 0, 0, time.UTC)),
		Health: map[string]handlers.Pinger{
			"store": handlers.PingFunc(func(context.Context) error { return nil }),
		},
	}
	if mutate != nil {
		mutate(&d)
	}

	r := gin.New()
	RegisterRoutes(r, d)
	return &api{t: t, r: r}
}

func (a *api) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			a.t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

func (a *api) expect(w *httptest.ResponseRecorder, status int, out any) {
	a.t.Helper()
	if w.Code != status {
		a.t.Fatalf("status = %d, want %d: %s", w.Code, status, w.Body.String())
	}
	if out != nil {
		if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
			a.t.Fatalf("decode: %v (%s)", err, w.Body.String())
		}
	}
}

func (a *api) signup(name string) (string, uint) {
	a.t.Helper()
	var res struct {
		Token string `json:"token"`
		User  struct {
			ID   uint   `json:"id"`
			Role string `json:"role"`
		} `json:"user"`
	}
	a.expect(a.do(http.MethodPost, "/auth/signup", "", gin.H{
		"name": name, "email": name + "@example.com", "password": "secret1",
	}), http.StatusCreated, &res)
	if res.User.Role != "user" {
		a.t.Fatalf("signup role = %s", res.User.Role)
	}
	return res.Token, res.User.ID
}

type idBody struct {
	ID uint `json:"id"`
}

type bookingBody struct {
	ID         uint            `json:"id"`
	Status     string          `json:"status"`
	GrandTotal decimal.Decimal `json:"grandTotal"`
	Services   []struct {
		ServiceID uint            `json:"serviceId"`
		Quantity  int             `json:"quantity"`
		LineTotal decimal.Decimal `json:"lineTotal"`
	} `json:"services"`
}

func TestBookingFlow(t *testing.T) {
	a := newAPI(t, nil)
	ana, _ := a.signup("ana")
	bob, _ := a.signup("bob")

	var rex idBody
	a.expect(a.do(http.MethodPost, "/api/dogs", ana, gin.H{"name": "Rex", "breed": "Beagle"}), http.StatusCreated, &rex)

	var walk idBody
	a.expect(a.do(http.MethodPost, "/api/services", ana, gin.H{"name": "Walk", "price": "10.00"}), http.StatusCreated, &walk)

	booking := func(in, out int, services ...gin.H) gin.H {
		return gin.H{
			"dogId":        rex.ID,
			"date":         "2030-05-10",
			"checkInTime":  fmt.Sprintf("2030-05-10T%02d:00:00Z", in),
			"checkOutTime": fmt.Sprintf("2030-05-10T%02d:00:00Z", out),
			"services":     services,
		}
	}

	var created bookingBody
	a.expect(a.do(http.MethodPost, "/api/bookings", ana,
		booking(9, 12, gin.H{"serviceId": walk.ID, "quantity": 2})), http.StatusCreated, &created)
	if created.Status != "CONFIRMED" || !created.GrandTotal.Equal(decimal.NewFromInt(20)) {
		t.Fatalf("unexpected booking: %+v", created)
	}

	var conflict httperr.HTTPError
	a.expect(a.do(http.MethodPost, "/api/bookings", ana, booking(10, 11)), http.StatusConflict, &conflict)
	if conflict.Code != "slot_already_booked" {
		t.Fatalf("error_code = %s", conflict.Code)
	}

	var adjacent bookingBody
	a.expect(a.do(http.MethodPost, "/api/bookings/pending", ana, booking(12, 13)), http.StatusCreated, &adjacent)
	if adjacent.Status != "PENDING" || !adjacent.GrandTotal.IsZero() {
		t.Fatalf("unexpected pending booking: %+v", adjacent)
	}

	path := fmt.Sprintf("/api/bookings/%d", created.ID)
	a.expect(a.do(http.MethodGet, path, bob, nil), http.StatusForbidden, nil)

	var summary bookingBody
	a.expect(a.do(http.MethodPut, path+"/services", ana, gin.H{
		"services": []gin.H{{"serviceId": walk.ID, "quantity": "3"}},
	}), http.StatusOK, &summary)
	if !summary.GrandTotal.Equal(decimal.NewFromInt(30)) || len(summary.Services) != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	var bad httperr.HTTPError
	a.expect(a.do(http.MethodPut, path+"/services", ana, gin.H{
		"services": []gin.H{{"serviceId": walk.ID, "quantity": 0}},
	}), http.StatusBadRequest, &bad)
	if bad.Code != "invalid_quantity" {
		t.Fatalf("error_code = %s", bad.Code)
	}

	for _, tc := range []struct {
		body gin.H
		code string
	}{
		{gin.H{}, "missing_field"},
		{gin.H{"services": []gin.H{{"serviceId": "abc"}}}, "service_not_found"},
		{gin.H{"services": []gin.H{{"serviceId": walk.ID, "quantity": "two"}}}, "invalid_quantity"},
		{gin.H{"services": []gin.H{{"serviceId": walk.ID, "quantity": true}}}, "invalid_quantity"},
	} {
		var e httperr.HTTPError
		a.expect(a.do(http.MethodPut, path+"/services", ana, tc.body), http.StatusBadRequest, &e)
		if e.Code != tc.code {
			t.Fatalf("body %v: error_code = %s, want %s", tc.body, e.Code, tc.code)
		}
	}
	a.expect(a.do(http.MethodGet, path+"/services", ana, nil), http.StatusOK, &summary)
	if !summary.GrandTotal.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("rejected requests changed the lines: %+v", summary)
	}

	var status bookingBody
	a.expect(a.do(http.MethodPatch, path+"/status", ana, gin.H{"status": "cancelled"}), http.StatusOK, &status)
	if status.Status != "CANCELLED" {
		t.Fatalf("status = %s", status.Status)
	}

	var list struct {
		Data  []bookingBody `json:"data"`
		Total int           `json:"total"`
	}
	a.expect(a.do(http.MethodGet, "/api/bookings", bob, nil), http.StatusOK, &list)
	if list.Total != 0 {
		t.Fatalf("bob sees %d bookings", list.Total)
	}
	a.expect(a.do(http.MethodGet, "/api/bookings", ana, nil), http.StatusOK, &list)
	if list.Total != 2 {
		t.Fatalf("ana sees %d bookings", list.Total)
	}

	a.expect(a.do(http.MethodDelete, path, ana, nil), http.StatusNoContent, nil)
	a.expect(a.do(http.MethodGet, path, ana, nil), http.StatusNotFound, nil)
}

func TestErrorResponses(t *testing.T) {
	a := newAPI(t, nil)
	ana, _ := a.signup("ana")

	cases := []struct {
		name   string
		method string
		path   string
		token  string
		body   any
		status int
		code   string
	}{
		{"no token", http.MethodGet, "/api/dogs", "", nil, http.StatusUnauthorized, "missing_authorization_header"},
		{"bad id", http.MethodGet, "/api/dogs/abc", ana, nil, http.StatusBadRequest, "invalid_id"},
		{"unknown dog", http.MethodGet, "/api/dogs/99", ana, nil, http.StatusNotFound, "dog_not_found"},
		{"missing booking fields", http.MethodPost, "/api/bookings", ana, gin.H{}, http.StatusBadRequest, "missing_field"},
		{"empty status", http.MethodPatch, "/api/bookings/1/status", ana, gin.H{}, http.StatusBadRequest, "missing_field"},
		{"admin only", http.MethodGet, "/api/users", ana, nil, http.StatusForbidden, "forbidden"},
		{"audit admin only", http.MethodGet, "/api/audit-logs", ana, nil, http.StatusForbidden, "forbidden"},
		{"duplicate signup", http.MethodPost, "/auth/signup", "", gin.H{"name": "x", "email": "ANA@example.com", "password": "secret1"}, http.StatusConflict, "email_taken"},
		{"bad login", http.MethodPost, "/auth/login", "", gin.H{"email": "ana@example.com", "password": "nope"}, http.StatusUnauthorized, "invalid_credentials"},
		{"photo for unknown dog", http.MethodPut, "/api/dogs/99/photo", ana, nil, http.StatusNotFound, "dog_not_found"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var body httperr.HTTPError
			a.expect(a.do(tc.method, tc.path, tc.token, tc.body), tc.status, &body)
			if body.Code != tc.code {
				t.Fatalf("error_code = %s, want %s", body.Code, tc.code)
			}
		})
	}
}

func TestBindingErrorsUseJSONNames(t *testing.T) {
	a := newAPI(t, nil)

	var body httperr.HTTPError
	a.expect(a.do(http.MethodPost, "/auth/signup", "", gin.H{"name": "x", "email": "x@example.com", "password": "123"}),
		http.StatusBadRequest, &body)
	if body.Code != "validation_failed" || len(body.Details) != 1 || body.Details[0].Field != "password" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestLoginIsRateLimited(t *testing.T) {
	a := newAPI(t, func(d *Deps) { d.LoginLimiter = denyAll{} })

	var body httperr.HTTPError
	a.expect(a.do(http.MethodPost, "/auth/login", "", gin.H{"email": "a@example.com", "password": "x"}),
		http.StatusTooManyRequests, &body)
	if body.Code != "rate_limited" {
		t.Fatalf("error_code = %s", body.Code)
	}
}

func TestHealth(t *testing.T) {
	a := newAPI(t, nil)
	var body struct {
		Status string `json:"status"`
	}
	a.expect(a.do(http.MethodGet, "/health", "", nil), http.StatusOK, &body)
	if body.Status != "ok" {
		t.Fatalf("status = %s", body.Status)
	}
}
