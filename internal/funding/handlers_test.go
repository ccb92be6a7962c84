package funding

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"agrifund-backend/internal/domain"
	"agrifund-backend/internal/pkg/response"
	"agrifund-backend/internal/treasury"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupFundingApp(t *testing.T, userID string) (*fiber.App, *Service, *treasury.Service) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Campaign{},
		&domain.Investment{},
		&domain.Account{},
		&domain.TransferRecord{},
		&domain.CampaignEvent{},
	))

	ts := &treasury.Service{DB: db}
	svc := &Service{DB: db, Treasury: ts, AllowExpiredWithdraw: true}
	h := &Handlers{Service: svc}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if userID != "" {
			c.Locals("user", map[string]interface{}{"user_id": userID})
		}
		return c.Next()
	})
	app.Post("/api/v1/campaigns/create-campaign", h.CreateCampaign)
	app.Post("/api/v1/campaigns/invest", h.Invest)
	app.Post("/api/v1/campaigns/withdraw", h.Withdraw)
	app.Post("/api/v1/campaigns/return-profits", h.ReturnProfits)
	app.Post("/api/v1/campaigns/refund", h.Refund)
	app.Get("/api/v1/campaigns/get-campaign/:id", h.GetCampaign)
	app.Get("/api/v1/campaigns/get-investors/:id", h.GetInvestors)
	app.Get("/api/v1/campaigns/get-events/:id", h.GetEvents)

	return app, svc, ts
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestCreateCampaignHandler(t *testing.T) {
	app, svc, _ := setupFundingApp(t, "farmer-1")

	body, _ := json.Marshal(map[string]int64{"funding_goal": 1000, "duration": 100, "roi": 20})
	req := httptest.NewRequest("POST", "/api/v1/campaigns/create-campaign", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var out response.SuccessBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "success", out.Status)

	c, err := svc.GetCampaign(1)
	require.NoError(t, err)
	assert.Equal(t, "farmer-1", c.FarmerID)
	assert.Equal(t, int64(1000), c.FundingGoal)
}

func TestCreateCampaignHandler_InvalidInput(t *testing.T) {
	app, _, _ := setupFundingApp(t, "farmer-1")
	rec := postJSON(t, app, "/api/v1/campaigns/create-campaign", map[string]int64{
		"funding_goal": 0, "duration": 100, "roi": 20,
	})
	assert.Equal(t, fiber.StatusBadRequest, rec.StatusCode)
}

func TestCreateCampaignHandler_NoSession(t *testing.T) {
	app, _, _ := setupFundingApp(t, "")
	rec := postJSON(t, app, "/api/v1/campaigns/create-campaign", map[string]int64{
		"funding_goal": 1000, "duration": 100, "roi": 20,
	})
	assert.Equal(t, fiber.StatusUnauthorized, rec.StatusCode)
}

func TestInvestHandler_StatusCodes(t *testing.T) {
	app, svc, ts := setupFundingApp(t, "inv-1")

	// Unknown campaign → 404.
	rec := postJSON(t, app, "/api/v1/campaigns/invest", map[string]int64{"campaign_id": 9, "amount": 100})
	assert.Equal(t, fiber.StatusNotFound, rec.StatusCode)

	_, err := svc.CreateCampaign("farmer-1", 1000, 100, 0)
	require.NoError(t, err)

	// No account funded → transfer declined → 422.
	rec = postJSON(t, app, "/api/v1/campaigns/invest", map[string]int64{"campaign_id": 1, "amount": 100})
	assert.Equal(t, fiber.StatusUnprocessableEntity, rec.StatusCode)

	require.NoError(t, ts.Deposit("inv-1", 500))
	rec = postJSON(t, app, "/api/v1/campaigns/invest", map[string]int64{"campaign_id": 1, "amount": 100})
	assert.Equal(t, fiber.StatusOK, rec.StatusCode)

	// Non-positive amount → 400.
	rec = postJSON(t, app, "/api/v1/campaigns/invest", map[string]int64{"campaign_id": 1, "amount": 0})
	assert.Equal(t, fiber.StatusBadRequest, rec.StatusCode)
}

func TestWithdrawHandler_WrongCaller(t *testing.T) {
	app, svc, ts := setupFundingApp(t, "inv-1")

	_, err := svc.CreateCampaign("farmer-1", 100, 100, 0)
	require.NoError(t, err)
	require.NoError(t, ts.Deposit("inv-1", 100))
	_, err = svc.Invest("inv-1", 1, 100)
	require.NoError(t, err)

	rec := postJSON(t, app, "/api/v1/campaigns/withdraw", map[string]int64{"campaign_id": 1})
	assert.Equal(t, fiber.StatusForbidden, rec.StatusCode)
}

func TestWithdrawHandler_Conflicts(t *testing.T) {
	app, svc, ts := setupFundingApp(t, "farmer-1")

	_, err := svc.CreateCampaign("farmer-1", 100, 100, 0)
	require.NoError(t, err)

	// Open, before deadline → 409.
	rec := postJSON(t, app, "/api/v1/campaigns/withdraw", map[string]int64{"campaign_id": 1})
	assert.Equal(t, fiber.StatusConflict, rec.StatusCode)

	require.NoError(t, ts.Deposit("inv-1", 100))
	_, err = svc.Invest("inv-1", 1, 100)
	require.NoError(t, err)

	rec = postJSON(t, app, "/api/v1/campaigns/withdraw", map[string]int64{"campaign_id": 1})
	assert.Equal(t, fiber.StatusOK, rec.StatusCode)

	// Double withdraw → 409.
	rec = postJSON(t, app, "/api/v1/campaigns/withdraw", map[string]int64{"campaign_id": 1})
	assert.Equal(t, fiber.StatusConflict, rec.StatusCode)
}

func TestGetInvestorsHandler(t *testing.T) {
	app, svc, ts := setupFundingApp(t, "inv-1")

	req := httptest.NewRequest("GET", "/api/v1/campaigns/get-investors/abc", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	req = httptest.NewRequest("GET", "/api/v1/campaigns/get-investors/7", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	_, err = svc.CreateCampaign("farmer-1", 1000, 100, 0)
	require.NoError(t, err)

	// Exists but no investors → still 404, distinct message.
	req = httptest.NewRequest("GET", "/api/v1/campaigns/get-investors/1", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	var out response.ErrorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, domain.ErrNoInvestors.Error(), out.Error.Message)

	require.NoError(t, ts.Deposit("inv-1", 100))
	_, err = svc.Invest("inv-1", 1, 100)
	require.NoError(t, err)

	req = httptest.NewRequest("GET", "/api/v1/campaigns/get-investors/1", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var ok response.SuccessBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ok))
	ids, _ := ok.Data.([]interface{})
	require.Len(t, ids, 1)
	assert.Equal(t, "inv-1", ids[0])
}

func TestGetEventsHandler(t *testing.T) {
	app, svc, ts := setupFundingApp(t, "inv-1")

	_, err := svc.CreateCampaign("farmer-1", 100, 100, 0)
	require.NoError(t, err)
	require.NoError(t, ts.Deposit("inv-1", 100))
	_, err = svc.Invest("inv-1", 1, 100)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/v1/campaigns/get-events/1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var ok response.SuccessBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&ok))
	events, _ := ok.Data.([]interface{})
	// CREATED, INVESTED, FUNDED
	require.Len(t, events, 3)
	first, _ := events[0].(map[string]interface{})
	assert.Equal(t, domain.CampaignEventCreated, first["event_type"])
}

func TestRefundHandler_Conflict(t *testing.T) {
	app, svc, _ := setupFundingApp(t, "inv-1")

	_, err := svc.CreateCampaign("farmer-1", 1000, 100, 0)
	require.NoError(t, err)

	// Funding period still running → 409.
	rec := postJSON(t, app, "/api/v1/campaigns/refund", map[string]int64{"campaign_id": 1})
	assert.Equal(t, fiber.StatusConflict, rec.StatusCode)
}
