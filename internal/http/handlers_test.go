package http

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"github.com/solarlabs-dev/solar-equipment-catalog/internal/service"
	"github.com/solarlabs-dev/solar-equipment-catalog/internal/testdb"
)

// setupTestApp wires a fiber app over an in-memory catalog seeded with a
// module (id 1), an inverter (id 2) and a malformed battery row (id 7).
// The db handle is returned so tests can break the store underneath the app.
func setupTestApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()

	db := testdb.Open(t)
	testdb.SeedModule(t, db)
	testdb.SeedInverter(t, db)
	testdb.SeedBattery(t, db)

	app := fiber.New()
	Register(app, service.New(db))
	return app, db
}

func getJSON(t *testing.T, app *fiber.App, path string) (int, map[string]any) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest("GET", path, nil))
	if err != nil {
		t.Fatalf("app.Test(%s) error = %v", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading response body: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("response %q is not JSON: %v", body, err)
	}
	return resp.StatusCode, payload
}

func TestGetEquipmentHandlerModule(t *testing.T) {
	app, _ := setupTestApp(t)

	status, payload := getJSON(t, app, "/equipment/1")
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if payload["equipment_type"] != "module" {
		t.Errorf("equipment_type = %v, want module", payload["equipment_type"])
	}

	eq, ok := payload["equipment"].(map[string]any)
	if !ok {
		t.Fatalf("equipment payload = %T, want object", payload["equipment"])
	}
	if eq["id"] != float64(1) {
		t.Errorf("id = %v, want 1", eq["id"])
	}
	if eq["model"] != "X200" || eq["manufacturer"] != "Acme" {
		t.Errorf("model/manufacturer = %v/%v, want X200/Acme", eq["model"], eq["manufacturer"])
	}
	if eq["panel_kw_stc"] != 0.2 {
		t.Errorf("panel_kw_stc = %v, want 0.2", eq["panel_kw_stc"])
	}
	if _, present := eq["description"]; present {
		t.Errorf("description = %v, want omitted", eq["description"])
	}
}

func TestGetEquipmentHandlerInverter(t *testing.T) {
	app, _ := setupTestApp(t)

	status, payload := getJSON(t, app, "/equipment/2")
	if status != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", status)
	}
	if payload["equipment_type"] != "inverter" {
		t.Errorf("equipment_type = %v, want inverter", payload["equipment_type"])
	}

	eq := payload["equipment"].(map[string]any)
	if eq["rating"] != float64(5) {
		t.Errorf("rating = %v, want 5", eq["rating"])
	}
	if eq["inverter_efficiency"] != 0.97 {
		t.Errorf("inverter_efficiency = %v, want 0.97", eq["inverter_efficiency"])
	}
	if eq["inverter_is_three_phase"] != false {
		t.Errorf("inverter_is_three_phase = %v, want false", eq["inverter_is_three_phase"])
	}
}

func TestGetEquipmentHandlerNotFound(t *testing.T) {
	app, _ := setupTestApp(t)

	status, payload := getJSON(t, app, "/equipment/99")
	if status != fiber.StatusNotFound {
		t.Fatalf("status = %d, want 404", status)
	}
	if msg, _ := payload["error"].(string); !strings.Contains(msg, "99") {
		t.Errorf("error = %q, want it to reference id 99", msg)
	}
}

func TestGetEquipmentHandlerBadID(t *testing.T) {
	app, _ := setupTestApp(t)

	for _, path := range []string{"/equipment/abc", "/equipment/-1", "/equipment/0"} {
		status, _ := getJSON(t, app, path)
		if status != fiber.StatusBadRequest {
			t.Errorf("GET %s status = %d, want 400", path, status)
		}
	}
}

func TestGetEquipmentHandlerUnrecognizedShape(t *testing.T) {
	app, _ := setupTestApp(t)

	status, payload := getJSON(t, app, "/equipment/7")
	if status != fiber.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", status)
	}
	if _, ok := payload["error"]; !ok {
		t.Errorf("payload = %v, want an error field", payload)
	}
}

func TestGetEquipmentHandlerDataAccessError(t *testing.T) {
	app, db := setupTestApp(t)
	db.Close()

	status, payload := getJSON(t, app, "/equipment/1")
	if status != fiber.StatusInternalServerError {
		t.Fatalf("status = %d, want 500 when the store is unreachable", status)
	}
	if _, ok := payload["error"]; !ok {
		t.Errorf("payload = %v, want an error field", payload)
	}
}
