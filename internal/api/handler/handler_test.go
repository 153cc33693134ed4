package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/AlexandraCulea/Car-Service-RESTful-API/internal/api"
	"github.com/AlexandraCulea/Car-Service-RESTful-API/internal/api/handler"
	"github.com/AlexandraCulea/Car-Service-RESTful-API/internal/api/middleware"
	"github.com/AlexandraCulea/Car-Service-RESTful-API/internal/repository/jsonfile"
	"github.com/AlexandraCulea/Car-Service-RESTful-API/internal/service"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := jsonfile.Open(filepath.Join(t.TempDir(), "db.json"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	clientRepo := jsonfile.NewClientRepository(db)
	apptRepo := jsonfile.NewAppointmentRepository(db)

	cs := service.NewClientService(clientRepo)
	as := service.NewAppointmentService(apptRepo, clientRepo)

	return api.SetupRouter(
		handler.NewClientHandler(cs),
		handler.NewCarHandler(cs),
		handler.NewAppointmentHandler(as),
		middleware.NewRateLimiter(1000, 1000),
		zerolog.Nop(),
	)
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	// list endpoints return arrays; callers decode those themselves
	var doc map[string]json.RawMessage
	if w.Body.Len() > 0 && w.Body.Bytes()[0] == '{' {
		if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
			t.Fatalf("%s %s: malformed JSON response: %v\n%s", method, path, err, w.Body.String())
		}
	}
	return w, doc
}

func strField(t *testing.T, doc map[string]json.RawMessage, key string) string {
	t.Helper()
	var s string
	if err := json.Unmarshal(doc[key], &s); err != nil {
		t.Fatalf("field %q: %v", key, err)
	}
	return s
}

func TestClientLifecycle(t *testing.T) {
	r := newTestRouter(t)

	w, doc := doJSON(t, r, http.MethodPost, "/clients",
		`{"firstName":"Ana","lastName":"Pop","email":"ana@example.com","phoneNumbers":["0712345678"]}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create client: status %d, body %s", w.Code, w.Body.String())
	}
	clientID := strField(t, doc, "id")
	if string(doc["isActive"]) != "true" {
		t.Errorf("isActive = %s, want true", doc["isActive"])
	}
	if string(doc["cars"]) != "[]" {
		t.Errorf("cars = %s, want []", doc["cars"])
	}

	w, _ = doJSON(t, r, http.MethodGet, "/clients", "")
	if w.Code != http.StatusOK {
		t.Errorf("list clients: status %d", w.Code)
	}

	w, doc = doJSON(t, r, http.MethodGet, "/clients/"+clientID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("get client: status %d", w.Code)
	}
	if got := strField(t, doc, "email"); got != "ana@example.com" {
		t.Errorf("email = %q", got)
	}

	w, doc = doJSON(t, r, http.MethodPut, "/clients/"+clientID, `{"firstName":"Ioana"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update client: status %d, body %s", w.Code, w.Body.String())
	}
	if got := strField(t, doc, "firstName"); got != "Ioana" {
		t.Errorf("firstName = %q, want Ioana", got)
	}
	if got := strField(t, doc, "lastName"); got != "Pop" {
		t.Errorf("lastName = %q, want Pop (partial update must not clear it)", got)
	}

	w, _ = doJSON(t, r, http.MethodDelete, "/clients/"+clientID, "")
	if w.Code != http.StatusOK {
		t.Errorf("delete client: status %d", w.Code)
	}
	w, _ = doJSON(t, r, http.MethodGet, "/clients/"+clientID, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("get deleted client: status %d, want 404", w.Code)
	}
}

func TestClientErrors(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"create with bad email", http.MethodPost, "/clients",
			`{"firstName":"Ana","lastName":"Pop","email":"not-an-email","phoneNumbers":["0712"]}`,
			http.StatusBadRequest},
		{"create with letters in phone", http.MethodPost, "/clients",
			`{"firstName":"Ana","lastName":"Pop","email":"a@b.c","phoneNumbers":["07-12"]}`,
			http.StatusBadRequest},
		{"create missing fields", http.MethodPost, "/clients",
			`{"firstName":"Ana"}`, http.StatusBadRequest},
		{"get missing client", http.MethodGet, "/clients/missing", "", http.StatusNotFound},
		{"update missing client", http.MethodPut, "/clients/missing", `{"firstName":"X"}`, http.StatusNotFound},
		{"delete missing client", http.MethodDelete, "/clients/missing", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := doJSON(t, r, tt.method, tt.path, tt.body)
			if w.Code != tt.want {
				t.Errorf("status %d, want %d; body %s", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestClientUpdateUnknownField(t *testing.T) {
	r := newTestRouter(t)
	_, doc := doJSON(t, r, http.MethodPost, "/clients",
		`{"firstName":"Ana","lastName":"Pop","email":"ana@example.com","phoneNumbers":["0712"]}`)
	id := strField(t, doc, "id")

	w, doc := doJSON(t, r, http.MethodPut, "/clients/"+id, `{"nickname":"Anni"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", w.Code)
	}
	if msg := strField(t, doc, "error"); !bytes.Contains([]byte(msg), []byte("nickname")) {
		t.Errorf("error %q should name the unknown field", msg)
	}
}

func TestCarEndpoints(t *testing.T) {
	r := newTestRouter(t)
	_, doc := doJSON(t, r, http.MethodPost, "/clients",
		`{"firstName":"Ana","lastName":"Pop","email":"ana@example.com","phoneNumbers":["0712"]}`)
	clientID := strField(t, doc, "id")

	carBody := `{"numberPlate":"B01ABC","vin":"VF1X","brand":"Dacia","model":"Logan","year":2020,"engineType":"petrol","engineCapacity":1200,"horsepower":90}`
	w, doc := doJSON(t, r, http.MethodPost, fmt.Sprintf("/clients/%s/cars", clientID), carBody)
	if w.Code != http.StatusCreated {
		t.Fatalf("add car: status %d, body %s", w.Code, w.Body.String())
	}
	carID := strField(t, doc, "id")
	if string(doc["kilowatts"]) != "66" {
		t.Errorf("kilowatts = %s, want 66 (derived from 90 hp)", doc["kilowatts"])
	}

	w, _ = doJSON(t, r, http.MethodGet, fmt.Sprintf("/clients/%s/cars", clientID), "")
	if w.Code != http.StatusOK {
		t.Errorf("list cars: status %d", w.Code)
	}

	w, _ = doJSON(t, r, http.MethodPost, fmt.Sprintf("/clients/%s/cars", clientID), carBody)
	if w.Code != http.StatusBadRequest {
		t.Errorf("duplicate plate: status %d, want 400", w.Code)
	}

	w, doc = doJSON(t, r, http.MethodPut, fmt.Sprintf("/clients/%s/cars/%s", clientID, carID),
		`{"horsepower":120}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update car: status %d, body %s", w.Code, w.Body.String())
	}
	if string(doc["kilowatts"]) != "88" {
		t.Errorf("kilowatts = %s, want 88 (recomputed from 120 hp)", doc["kilowatts"])
	}

	w, _ = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/clients/%s/cars/%s", clientID, carID), "")
	if w.Code != http.StatusOK {
		t.Errorf("delete car: status %d", w.Code)
	}
	w, _ = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/clients/%s/cars/%s", clientID, carID), "")
	if w.Code != http.StatusNotFound {
		t.Errorf("delete missing car: status %d, want 404", w.Code)
	}
}

func TestAppointmentEndpoints(t *testing.T) {
	r := newTestRouter(t)
	_, doc := doJSON(t, r, http.MethodPost, "/clients",
		`{"firstName":"Ana","lastName":"Pop","email":"ana@example.com","phoneNumbers":["0712"]}`)
	clientID := strField(t, doc, "id")
	_, doc = doJSON(t, r, http.MethodPost, fmt.Sprintf("/clients/%s/cars", clientID),
		`{"numberPlate":"B01ABC","vin":"VF1X","brand":"Dacia","model":"Logan","year":2020,"engineType":"petrol","engineCapacity":1200,"horsepower":90}`)
	carID := strField(t, doc, "id")

	apptBody := func(timeStr string, duration int) string {
		return fmt.Sprintf(`{"clientId":%q,"carId":%q,"contactMethod":"phone","action":"Oil change","date":"2024-06-10","time":%q,"duration":%d}`,
			clientID, carID, timeStr, duration)
	}

	w, doc := doJSON(t, r, http.MethodPost, "/appointments", apptBody("09:00", 60))
	if w.Code != http.StatusCreated {
		t.Fatalf("create appointment: status %d, body %s", w.Code, w.Body.String())
	}
	apptID := strField(t, doc, "id")

	w, _ = doJSON(t, r, http.MethodPost, "/appointments", apptBody("07:30", 60))
	if w.Code != http.StatusBadRequest {
		t.Errorf("before opening: status %d, want 400", w.Code)
	}

	w, _ = doJSON(t, r, http.MethodGet, "/appointments?action=oil", "")
	if w.Code != http.StatusOK {
		t.Errorf("filtered list: status %d", w.Code)
	}
	var filtered []json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &filtered); err != nil || len(filtered) != 1 {
		t.Errorf("action=oil should match the oil change appointment, got %s", w.Body.String())
	}

	w, _ = doJSON(t, r, http.MethodGet, "/appointments/"+apptID, "")
	if w.Code != http.StatusOK {
		t.Errorf("get appointment: status %d", w.Code)
	}
	w, _ = doJSON(t, r, http.MethodGet, "/appointments/missing", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("get missing appointment: status %d, want 404", w.Code)
	}

	t.Run("history", func(t *testing.T) {
		w, doc := doJSON(t, r, http.MethodGet, fmt.Sprintf("/appointments/%s/history", apptID), "")
		if w.Code != http.StatusOK {
			t.Fatalf("get history: status %d", w.Code)
		}
		if string(doc["receptionNotes"]) != "null" {
			t.Errorf("receptionNotes = %s, want null", doc["receptionNotes"])
		}

		w, doc = doJSON(t, r, http.MethodPut, fmt.Sprintf("/appointments/%s/history", apptID),
			`{"receptionNotes":"scratched bumper","repairDuration":30}`)
		if w.Code != http.StatusOK {
			t.Fatalf("update history: status %d, body %s", w.Code, w.Body.String())
		}
		if got := strField(t, doc, "receptionNotes"); got != "scratched bumper" {
			t.Errorf("receptionNotes = %q", got)
		}
		if string(doc["repairDuration"]) != "30" {
			t.Errorf("repairDuration = %s, want 30", doc["repairDuration"])
		}

		w, _ = doJSON(t, r, http.MethodPut, fmt.Sprintf("/appointments/%s/history", apptID),
			`{"repairDuration":25}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("repairDuration 25: status %d, want 400", w.Code)
		}
	})

	w, _ = doJSON(t, r, http.MethodDelete, "/appointments/"+apptID, "")
	if w.Code != http.StatusOK {
		t.Errorf("delete appointment: status %d", w.Code)
	}
	w, _ = doJSON(t, r, http.MethodDelete, "/appointments/"+apptID, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("delete missing appointment: status %d, want 404", w.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(t)
	w, doc := doJSON(t, r, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("health: status %d", w.Code)
	}
	if got := strField(t, doc, "status"); got != "ok" {
		t.Errorf("status = %q, want ok", got)
	}
}
