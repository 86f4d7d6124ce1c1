package handlers

import (
	"context"
	"net/http"
	"sync"

	"solar_advisor/internal/models"
	"solar_advisor/internal/service"
	"solar_advisor/internal/subsidy"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(ctx context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(ctx context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

// mockAdvisor is safe for use from websocket server goroutines.
type mockAdvisor struct {
	mu      sync.Mutex
	report  models.AdvisoryReport
	err     error
	details service.ModelDetails

	calls       int
	lastReading models.Reading
	lastSource  string
}

func (m *mockAdvisor) Advise(ctx context.Context, r models.Reading, source string) (models.AdvisoryReport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastReading = r
	m.lastSource = source
	return m.report, m.err
}
func (m *mockAdvisor) ModelDetails() service.ModelDetails { return m.details }

func (m *mockAdvisor) snapshot() (int, models.Reading, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls, m.lastReading, m.lastSource
}

type mockHistory struct {
	latest    models.PredictionRecord
	latestErr error
	records   []models.PredictionRecord
	listErr   error
	alerts    []models.AlertEvent
	alertsErr error

	lastList   service.HistoryFilter
	lastAlerts service.AlertFilter
}

func (m *mockHistory) Latest(ctx context.Context) (models.PredictionRecord, error) {
	return m.latest, m.latestErr
}
func (m *mockHistory) List(ctx context.Context, f service.HistoryFilter) ([]models.PredictionRecord, error) {
	m.lastList = f
	return m.records, m.listErr
}
func (m *mockHistory) Alerts(ctx context.Context, f service.AlertFilter) ([]models.AlertEvent, error) {
	m.lastAlerts = f
	return m.alerts, m.alertsErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func newTestSubsidies() service.Subsidies {
	t, err := subsidy.New([]subsidy.Region{
		{Name: "Gujarat", Schemes: []string{"Surya Gujarat: 40% up to 3 kW"}},
		{Name: "Kerala", Schemes: []string{"Soura: 40% up to 3 kW"}},
	})
	if err != nil {
		panic(err)
	}
	return t
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
