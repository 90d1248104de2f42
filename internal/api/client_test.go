package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewWithHTTPClient(srv.URL, srv.Client())
}

func TestNew_TrimsTrailingSlash(t *testing.T) {
	t.Parallel()

	c := New("http://localhost:8000/")
	assert.Equal(t, "http://localhost:8000", c.BaseURL())

	c = New("http://localhost:8000")
	assert.Equal(t, "http://localhost:8000", c.BaseURL())
}

func TestListBrokers(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/brokers/", r.URL.Path)
		_ = json.NewEncoder(w).Encode([]Broker{
			{ID: 1, Name: "Rajesh Kumar", LicenseNumber: "3972562113", AvgOverall: 4.5},
			{ID: 2, Name: "Priya Sharma", LicenseNumber: "7495224699", AvgOverall: 4.2},
		})
	}))

	brokers, err := c.ListBrokers(context.Background())
	require.NoError(t, err)
	require.Len(t, brokers, 2)
	assert.Equal(t, "Rajesh Kumar", brokers[0].Name)
	assert.Equal(t, "7495224699", brokers[1].LicenseNumber)
}

func TestBrokerLogin_Rejection(t *testing.T) {
	t.Parallel()

	// A false success field is a value, not an error
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/brokers/login", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "0000000000", body["license_number"])
		_ = json.NewEncoder(w).Encode(LoginResponse{Success: false, Message: "Invalid license number"})
	}))

	resp, err := c.BrokerLogin(context.Background(), "0000000000")
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Invalid license number", resp.Message)
	assert.Nil(t, resp.Broker)
}

func TestStartJob_PathAndBody(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/brokers/7/start-job", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "TN01AB1234", body["vehicle_number"])
		_ = json.NewEncoder(w).Encode(StartJobResponse{Success: true, Message: "ok", ApplicationID: 42})
	}))

	resp, err := c.StartJob(context.Background(), 7, "TN01AB1234")
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, 42, resp.ApplicationID)
}

func TestCalculateFee_RendersServerTotalVerbatim(t *testing.T) {
	t.Parallel()

	// The server total is decoded as-is; the client never recomputes it,
	// so a deliberately inconsistent breakdown must survive the round trip.
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/applications/1/calculate-fee", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "New Registration", body["application_type"])
		assert.Equal(t, "Two Wheeler", body["vehicle_class"])
		_ = json.NewEncoder(w).Encode(FeeEstimate{Breakdown: FeeBreakdown{
			BaseFee:          1500,
			ServiceFee:       1500,
			BrokerCommission: 225,
			TaxGST:           270,
			Total:            9999.99,
		}})
	}))

	est, err := c.CalculateFee(context.Background(), 1, "New Registration", "Two Wheeler")
	require.NoError(t, err)
	assert.Equal(t, 9999.99, est.Breakdown.Total)
}

func TestListComplaints_Filters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		brokerID  int
		status    string
		wantQuery string
	}{
		{"no_filters", 0, "", ""},
		{"broker_only", 3, "", "broker_id=3"},
		{"both", 3, "Open", "broker_id=3&status=Open"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/complaints", r.URL.Path)
				assert.Equal(t, tt.wantQuery, r.URL.RawQuery)
				_ = json.NewEncoder(w).Encode([]Complaint{})
			}))
			_, err := c.ListComplaints(context.Background(), tt.brokerID, tt.status)
			require.NoError(t, err)
		})
	}
}

func TestProcessPayment(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payments/", r.URL.Path)
		var req PaymentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 42, req.ApplicationID)
		assert.Equal(t, "UPI", req.PaymentMethod)
		assert.JSONEq(t, `{"base_fee":1500,"service_fee":1500,"broker_commission":225,"tax_gst":270,"total":1995}`, req.FeeBreakdown)
		_ = json.NewEncoder(w).Encode(PaymentResponse{
			Success:       true,
			PaymentID:     9,
			TransactionID: "TXN0123456789AB",
			Amount:        req.Amount,
			Status:        "Completed",
		})
	}))

	raw, err := json.Marshal(FeeBreakdown{BaseFee: 1500, ServiceFee: 1500, BrokerCommission: 225, TaxGST: 270, Total: 1995})
	require.NoError(t, err)

	resp, err := c.ProcessPayment(context.Background(), PaymentRequest{
		ApplicationID: 42,
		Amount:        1995,
		PaymentMethod: "UPI",
		FeeBreakdown:  string(raw),
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "TXN0123456789AB", resp.TransactionID)
}

func TestWizardSubmissionOrder(t *testing.T) {
	t.Parallel()

	// Citizen creation must land before application creation
	var calls []string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.URL.Path)
		switch r.URL.Path {
		case "/citizens/":
			_ = json.NewEncoder(w).Encode(Citizen{ID: 11, Name: "Jane Doe"})
		case "/applications/":
			var req ApplicationCreate
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, 11, req.CitizenID)
			_ = json.NewEncoder(w).Encode(Application{ID: 99, CitizenID: req.CitizenID, IsFraud: false})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	ctx := context.Background()
	citizen, err := c.CreateCitizen(ctx, CitizenCreate{Name: "Jane Doe", Email: "jane@example.com"})
	require.NoError(t, err)
	app, err := c.CreateApplication(ctx, ApplicationCreate{CitizenID: citizen.ID, BrokerID: 1, ApplicationType: "New Registration"})
	require.NoError(t, err)

	assert.Equal(t, []string{"/citizens/", "/applications/"}, calls)
	assert.Equal(t, 99, app.ID)
}

func TestServerError_GenericFailure(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	_, err := c.ListBrokers(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "operation failed")
	assert.Contains(t, err.Error(), "list brokers")

	_, err = c.VerifyOTP(context.Background(), "9999999999", "123456")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "verify otp: operation failed")
}

func TestTransportError_GenericFailure(t *testing.T) {
	t.Parallel()

	// Nothing is listening at this address
	c := New("http://127.0.0.1:1")
	_, err := c.Analytics(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "analytics: operation failed")
}

func TestDetectForgery(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/detect-forgery/", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "aGVsbG8=", body["image"])
		_ = json.NewEncoder(w).Encode(ForgeryResult{
			IsForged:   true,
			Confidence: 0.92,
			Issues:     []string{"inconsistent font", "tampered seal"},
		})
	}))

	res, err := c.DetectForgery(context.Background(), "aGVsbG8=")
	require.NoError(t, err)
	assert.True(t, res.IsForged)
	assert.Len(t, res.Issues, 2)
}

func TestChat(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]string{"response": "Visit your nearest RTO office."})
	}))

	reply, err := c.Chat(context.Background(), "How do I renew my registration?")
	require.NoError(t, err)
	assert.Equal(t, "Visit your nearest RTO office.", reply)
}
