//go:build integration

package e2e

// e2e_test.go
// End-to-end integration tests using real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v
//
// These tests:
//   T-E2E-1: Full costing cycle (login → catalog → product → BOM → cost rollup)
//   T-E2E-2: Effective-dated cost resolution through the ?date= parameter
//   T-E2E-3: Estimator prices a manufactured part from a design template
//   T-E2E-4: Labour-rate update changes subsequent product rollups
//   T-E2E-5: Catalog deletion guarded while a BOM references the item

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fabcost/internal/config"
	"fabcost/internal/infra"
	"fabcost/internal/router"
	"fabcost/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

type idBody struct {
	ID string `json:"id"`
}

func createJSON(t *testing.T, env *testEnv, path string, body map[string]any) string {
	t.Helper()
	resp := do(t, env.server, "POST", path, jsonBody(t, body), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created idBody
	decodeJSON(t, resp, &created)
	require.NotEmpty(t, created.ID)
	return created.ID
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string // admin JWT
	engine *gin.Engine
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	// Start Postgres container
	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("fabcost_test"),
		tcPostgres.WithUsername("fabcost"),
		tcPostgres.WithPassword("fabcost"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Start Redis container
	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		WorkerPoolSize:     1,
		PDFStoragePath:     t.TempDir(),
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	require.NoError(t, infra.RunMigrations(db))

	// Seed admin user
	hash, err := bcrypt.GenerateFromPassword([]byte("e2e-password"), 10)
	require.NoError(t, err)
	require.NoError(t, db.Exec(`INSERT INTO users (id, username, name, password_hash, role, active, created_at, updated_at)
		VALUES (gen_random_uuid(), 'admin@e2e.test', 'Admin E2E', ?, 'administrator', true, NOW(), NOW())
		ON CONFLICT DO NOTHING`, string(hash)).Error)

	dispatcher := worker.NewDispatcher(rdb)
	r := router.New(cfg, db, rdb, dispatcher)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	// Login as admin
	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": "admin@e2e.test", "password": "e2e-password"}),
		"",
	)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.AccessToken)

	env := &testEnv{server: srv, token: loginBody.AccessToken, engine: r}

	// Labour rate: $40.00/hour for every test
	rateResp := do(t, srv, "PUT", "/v1/settings/labour-rate",
		jsonBody(t, map[string]any{"cents_per_hour": 4000}), env.token)
	require.Equal(t, http.StatusOK, rateResp.StatusCode)
	rateResp.Body.Close()

	return env
}

// ── Tests ────────────────────────────────────────────────────────────────────

// T-E2E-1: Full costing cycle
func TestE2E_FullCostingCycle(t *testing.T) {
	env := setupTestEnv(t)

	partID := createJSON(t, env, "/v1/parts", map[string]any{
		"sku": "PART-250", "name": "Roller Bracket", "cost_price": 250,
	})
	fastenerID := createJSON(t, env, "/v1/fasteners", map[string]any{
		"sku": "FAST-010", "name": "M8 Bolt", "cost_price": 10,
	})
	productID := createJSON(t, env, "/v1/products", map[string]any{
		"sku": "PROD-001", "name": "Belt Conveyor",
		"cost_type": "CALCULATED", "labour_hours": 1, "labour_minutes": 30,
	})

	bomResp := do(t, env.server, "PUT", "/v1/products/"+productID+"/bom",
		jsonBody(t, map[string]any{
			"parts":     []map[string]any{{"component_id": partID, "quantity_used": "3"}},
			"fasteners": []map[string]any{{"component_id": fastenerID, "quantity_used": "20"}},
		}), env.token)
	require.Equal(t, http.StatusOK, bomResp.StatusCode)
	bomResp.Body.Close()

	costResp := do(t, env.server, "GET", "/v1/products/"+productID+"/cost", nil, env.token)
	require.Equal(t, http.StatusOK, costResp.StatusCode)
	var cost struct {
		TotalCost int64 `json:"total_cost"`
		Breakdown []struct {
			Type     string `json:"type"`
			Subtotal int64  `json:"subtotal"`
		} `json:"breakdown"`
	}
	decodeJSON(t, costResp, &cost)

	// 3×250 + 20×10 + 90/60×4000 = 750 + 200 + 6000
	assert.Equal(t, int64(6950), cost.TotalCost)
	require.Len(t, cost.Breakdown, 3)
	assert.Equal(t, "PART", cost.Breakdown[0].Type)
	assert.Equal(t, "FASTENER", cost.Breakdown[1].Type)
	assert.Equal(t, "LABOUR", cost.Breakdown[2].Type)
}

// T-E2E-2: Effective-dated resolution
func TestE2E_EffectiveDatedResolution(t *testing.T) {
	env := setupTestEnv(t)

	partID := createJSON(t, env, "/v1/parts", map[string]any{
		"sku": "PART-H", "name": "Drum Pulley", "cost_price": 500,
	})

	histResp := do(t, env.server, "POST", "/v1/parts/"+partID+"/cost-history",
		jsonBody(t, map[string]any{"cost_price": 800, "effective_date": "2026-01-10"}), env.token)
	require.Equal(t, http.StatusCreated, histResp.StatusCode)
	histResp.Body.Close()

	var cost struct {
		CostPrice int64 `json:"cost_price"`
	}

	// Before the entry takes effect, the catalog manual cost applies.
	beforeResp := do(t, env.server, "GET", "/v1/parts/"+partID+"/cost?date=2026-01-05", nil, env.token)
	require.Equal(t, http.StatusOK, beforeResp.StatusCode)
	decodeJSON(t, beforeResp, &cost)
	assert.Equal(t, int64(500), cost.CostPrice)

	// After, the history entry wins.
	afterResp := do(t, env.server, "GET", "/v1/parts/"+partID+"/cost?date=2026-01-15", nil, env.token)
	require.Equal(t, http.StatusOK, afterResp.StatusCode)
	decodeJSON(t, afterResp, &cost)
	assert.Equal(t, int64(800), cost.CostPrice)
}

// T-E2E-3: Estimator
func TestE2E_Estimate(t *testing.T) {
	env := setupTestEnv(t)

	partID := createJSON(t, env, "/v1/parts", map[string]any{
		"sku": "PART-E", "name": "Wear Strip", "cost_price": 100,
	})
	templateID := createJSON(t, env, "/v1/templates", map[string]any{
		"name":          "Tripper Frame",
		"pricing_matrix": []map[string]any{{"width": 600, "price": 2000}},
		"setup_fee":     500,
		"labor_minutes": 60,
		"internal_bom":  []map[string]any{{"component_id": partID, "quantity_used": "2"}},
	})

	estResp := do(t, env.server, "POST", "/v1/estimates",
		jsonBody(t, map[string]any{
			"type": "Tripper Frame", "width_mm": 600,
			"template_id": templateID, "quantity": 2,
		}), env.token)
	require.Equal(t, http.StatusOK, estResp.StatusCode)
	var est struct {
		FabricatorCost   int64 `json:"fabricator_cost"`
		InternalPartCost int64 `json:"internal_part_cost"`
		LaborCost        int64 `json:"labor_cost"`
		TotalEstimate    int64 `json:"total_estimate"`
	}
	decodeJSON(t, estResp, &est)

	assert.Equal(t, int64(2000*2+500), est.FabricatorCost)
	assert.Equal(t, int64(200), est.InternalPartCost)
	assert.Equal(t, int64(4000), est.LaborCost) // one hour of setup, not per unit
	assert.Equal(t, est.FabricatorCost+est.InternalPartCost+est.LaborCost, est.TotalEstimate)
}

// T-E2E-4: Labour-rate update flows into rollups
func TestE2E_LabourRateUpdateChangesRollup(t *testing.T) {
	env := setupTestEnv(t)

	productID := createJSON(t, env, "/v1/products", map[string]any{
		"sku": "PROD-L", "name": "Labour Only",
		"cost_type": "CALCULATED", "labour_hours": 2,
	})

	var cost struct {
		TotalCost int64 `json:"total_cost"`
	}
	firstResp := do(t, env.server, "GET", "/v1/products/"+productID+"/cost", nil, env.token)
	require.Equal(t, http.StatusOK, firstResp.StatusCode)
	decodeJSON(t, firstResp, &cost)
	assert.Equal(t, int64(8000), cost.TotalCost) // 2h × 4000

	rateResp := do(t, env.server, "PUT", "/v1/settings/labour-rate",
		jsonBody(t, map[string]any{"cents_per_hour": 5000}), env.token)
	require.Equal(t, http.StatusOK, rateResp.StatusCode)
	rateResp.Body.Close()

	secondResp := do(t, env.server, "GET", "/v1/products/"+productID+"/cost", nil, env.token)
	require.Equal(t, http.StatusOK, secondResp.StatusCode)
	decodeJSON(t, secondResp, &cost)
	assert.Equal(t, int64(10000), cost.TotalCost)
}

// T-E2E-5: Deletion guard
func TestE2E_CatalogDeletionGuard(t *testing.T) {
	env := setupTestEnv(t)

	partID := createJSON(t, env, "/v1/parts", map[string]any{
		"sku": "PART-G", "name": "Guard Rail", "cost_price": 100,
	})
	productID := createJSON(t, env, "/v1/products", map[string]any{
		"sku": "PROD-G", "name": "Guarded", "cost_type": "CALCULATED",
	})

	bomResp := do(t, env.server, "PUT", "/v1/products/"+productID+"/bom",
		jsonBody(t, map[string]any{
			"parts": []map[string]any{{"component_id": partID, "quantity_used": "1"}},
		}), env.token)
	require.Equal(t, http.StatusOK, bomResp.StatusCode)
	bomResp.Body.Close()

	// Referenced — deletion refused.
	delResp := do(t, env.server, "DELETE", "/v1/parts/"+partID, nil, env.token)
	assert.Equal(t, http.StatusConflict, delResp.StatusCode)
	delResp.Body.Close()

	// Remove the line, then deletion goes through.
	rmResp := do(t, env.server, "DELETE", "/v1/products/"+productID+"/bom/lines",
		jsonBody(t, map[string]any{"collection": "parts", "component_id": partID}), env.token)
	require.Equal(t, http.StatusOK, rmResp.StatusCode)
	rmResp.Body.Close()

	delResp = do(t, env.server, "DELETE", "/v1/parts/"+partID, nil, env.token)
	assert.Equal(t, http.StatusNoContent, delResp.StatusCode)
	delResp.Body.Close()
}
