package broker

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarathi-rto/sarathi/internal/api"
)

func newTestApp(t *testing.T, baseURL string) *App {
	t.Helper()

	a := NewApp(api.New(baseURL), nil, t.TempDir())
	a.Init()
	a.width = 120
	a.height = 40
	return a
}

func loggedInApp(t *testing.T, baseURL string) *App {
	t.Helper()

	a := newTestApp(t, baseURL)
	a.broker = &api.Broker{ID: 3, Name: "Ramesh Kumar", Phone: "9876543210"}
	a.phase = phaseDashboard
	return a
}

func TestLoginRejectionStaysOnLogin(t *testing.T) {
	t.Parallel()

	a := newTestApp(t, "http://localhost:0")

	updated, _ := a.Update(LoginResultMsg{Resp: &api.LoginResponse{Success: false, Message: "Invalid license number"}})
	a = updated.(*App)

	assert.Equal(t, phaseLogin, a.phase)
	assert.Equal(t, "Invalid license number", a.login.errMsg)
}

func TestLoginSuccessOpensDashboard(t *testing.T) {
	t.Parallel()

	a := newTestApp(t, "http://localhost:0")

	broker := &api.Broker{ID: 3, Name: "Ramesh Kumar"}
	updated, cmd := a.Update(LoginResultMsg{Resp: &api.LoginResponse{Success: true, Broker: broker}})
	a = updated.(*App)

	assert.Equal(t, phaseDashboard, a.phase)
	assert.Equal(t, 3, a.broker.ID)
	assert.NotNil(t, cmd, "login success kicks off the dashboard load")
}

func TestSessionRestoreSkipsLogin(t *testing.T) {
	t.Parallel()

	a := newTestApp(t, "http://localhost:0")

	updated, cmd := a.Update(SessionLoadedMsg{Broker: &api.Broker{ID: 5}})
	a = updated.(*App)

	assert.Equal(t, phaseDashboard, a.phase)
	assert.NotNil(t, cmd)
}

func TestStartJobUppercasesVehicleNumber(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "MH12AB1234", body["vehicle_number"])
		json.NewEncoder(w).Encode(api.StartJobResponse{Success: true, ApplicationID: 11})
	}))
	defer srv.Close()

	a := loggedInApp(t, srv.URL)
	a.startJobModal = NewStartJobModal(a.client, a.brokerID())
	a.startJobModal.input.SetValue("mh12ab1234")

	cmd, _ := a.startJobModal.Update(key("enter"))
	require.NotNil(t, cmd)

	updated, _ := a.Update(cmd())
	a = updated.(*App)

	// Success closes start-job and opens the OTP modal
	assert.Nil(t, a.startJobModal)
	require.NotNil(t, a.otpModal)
	assert.Equal(t, "9876543210", a.otpModal.Phone())
	assert.Equal(t, 11, a.lastJobAppID)
}

func TestFeeUsesLastJobApplicationID(t *testing.T) {
	t.Parallel()

	a := loggedInApp(t, "http://localhost:0")

	// No job this session: fall back to application 1
	assert.Equal(t, 1, a.feeAppID())

	a.lastJobAppID = 42
	assert.Equal(t, 42, a.feeAppID())

	// Opening the fee modal carries the id through
	updated, _ := a.handleKey(key("f"))
	a = updated.(*App)
	require.NotNil(t, a.feeModal)
	assert.Equal(t, 42, a.feeModal.appID)
}

func TestPaymentDismissalEndsJobChain(t *testing.T) {
	t.Parallel()

	a := loggedInApp(t, "http://localhost:0")
	a.lastJobAppID = 42
	a.paymentModal = NewPaymentModal(a.client, 42, testEstimate())
	a.paymentModal.paid = &api.PaymentResponse{Success: true, TransactionID: "TXN1"}

	updated, cmd := a.handleKey(key("esc"))
	a = updated.(*App)

	assert.Nil(t, a.paymentModal)
	assert.Equal(t, 0, a.lastJobAppID, "dismissal discards the job chain")
	require.NotNil(t, cmd)
	assert.IsType(t, ReloadDashboardMsg{}, cmd())
}

func TestPaymentSuccessWritesReceipt(t *testing.T) {
	t.Parallel()

	a := loggedInApp(t, "http://localhost:0")
	a.paymentModal = NewPaymentModal(a.client, 42, testEstimate())

	_, cmd := a.Update(PaymentResultMsg{Resp: &api.PaymentResponse{
		Success:       true,
		TransactionID: "TXN9",
		Amount:        3495,
		Status:        "Completed",
	}})
	require.NotNil(t, cmd)
	cmd()

	matches, err := filepath.Glob(filepath.Join(a.dataDir, "receipts", "*.txt"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestFeeProceedOpensPaymentWithEstimate(t *testing.T) {
	t.Parallel()

	a := loggedInApp(t, "http://localhost:0")
	a.feeModal = NewFeeModal(a.client, 7)
	a.feeModal.Update(FeeResultMsg{Estimate: testEstimate()})

	updated, _ := a.handleKey(key("p"))
	a = updated.(*App)

	assert.Nil(t, a.feeModal)
	require.NotNil(t, a.paymentModal)
	assert.Equal(t, 7, a.paymentModal.appID)
	assert.EqualValues(t, 3495, a.paymentModal.estimate.Breakdown.Total)
}

func TestDashboardLoadFiltersOwnApplications(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/brokers/3":
			json.NewEncoder(w).Encode(api.Broker{ID: 3, Name: "Ramesh Kumar"})
		case "/applications/":
			json.NewEncoder(w).Encode([]api.Application{
				{ID: 1, BrokerID: 3},
				{ID: 2, BrokerID: 9},
				{ID: 3, BrokerID: 3},
			})
		case "/complaints":
			json.NewEncoder(w).Encode([]api.Complaint{})
		case "/support/info":
			json.NewEncoder(w).Encode(api.SupportInfo{TollFree: "1800-11-0000"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	a := loggedInApp(t, srv.URL)
	msg := a.loadDashboard()()

	loaded, ok := msg.(DashboardLoadedMsg)
	require.True(t, ok)
	require.NoError(t, loaded.Err)
	assert.Len(t, loaded.Applications, 2, "only the broker's own applications")
	assert.Equal(t, "1800-11-0000", loaded.Support.TollFree)
}

func TestReloadMsgTriggersSnapshot(t *testing.T) {
	t.Parallel()

	a := loggedInApp(t, "http://localhost:0")

	_, cmd := a.Update(ReloadDashboardMsg{})
	assert.NotNil(t, cmd)
	assert.True(t, a.loading)
}

func TestLogoutClearsState(t *testing.T) {
	t.Parallel()

	a := loggedInApp(t, "http://localhost:0")
	a.applications = []api.Application{{ID: 1}}
	a.lastJobAppID = 9

	updated, _ := a.Update(LogoutMsg{})
	a = updated.(*App)

	assert.Equal(t, phaseLogin, a.phase)
	assert.Nil(t, a.broker)
	assert.Empty(t, a.applications)
	assert.Equal(t, 0, a.lastJobAppID)
}

func TestTabSwitchingPersists(t *testing.T) {
	a := loggedInApp(t, "http://localhost:0")

	updated, _ := a.handleKey(key("2"))
	a = updated.(*App)
	assert.Equal(t, TabComplaints, a.activeTab)

	// A fresh app over the same data dir restores the tab
	b := NewApp(api.New("http://localhost:0"), nil, a.dataDir)
	assert.Equal(t, TabComplaints, b.activeTab)
}
