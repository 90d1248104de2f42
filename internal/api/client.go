// Package api is the typed gateway to the RTO platform backend. Every
// operation maps to one endpoint, decodes the JSON body on any 2xx status,
// and collapses transport failures and non-2xx statuses into a single
// generic error per operation. Retries, backoff, and error subtyping are
// deliberately absent; callers recover by letting the user try again.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sarathi-rto/sarathi/internal/logger"
)

// Client talks to the platform API at a fixed base URL.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New creates a gateway client for the given base URL. A trailing slash on
// the base URL is tolerated. The underlying http.Client carries no timeout;
// a request that never resolves leaves its owning UI processing, which is
// the documented failure mode of the platform frontends.
func New(baseURL string) *Client {
	for len(baseURL) > 0 && baseURL[len(baseURL)-1] == '/' {
		baseURL = baseURL[:len(baseURL)-1]
	}
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{},
	}
}

// NewWithHTTPClient creates a gateway client with a caller-supplied
// http.Client, used by tests to point at httptest servers.
func NewWithHTTPClient(baseURL string, httpc *http.Client) *Client {
	c := New(baseURL)
	c.httpc = httpc
	return c
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do issues the request and decodes the response body into out (when out is
// non-nil). Any transport failure or non-2xx status becomes the single
// generic error shape for op.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encoding request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%s: operation failed: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		logger.Error("API %s %s failed: %v", method, path, err)
		return fmt.Errorf("%s: operation failed: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Error("API %s %s returned status %d", method, path, resp.StatusCode)
		return fmt.Errorf("%s: operation failed: status %d", op, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decoding response: %w", op, err)
	}
	return nil
}

// ListBrokers fetches all registered brokers.
func (c *Client) ListBrokers(ctx context.Context) ([]Broker, error) {
	var out []Broker
	if err := c.do(ctx, "list brokers", http.MethodGet, "/brokers/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetBroker fetches a single broker by id.
func (c *Client) GetBroker(ctx context.Context, brokerID int) (*Broker, error) {
	var out Broker
	path := "/brokers/" + strconv.Itoa(brokerID)
	if err := c.do(ctx, "get broker", http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// BrokerLogin authenticates a broker by license number. A business-rule
// rejection comes back as Success=false, not as an error.
func (c *Client) BrokerLogin(ctx context.Context, licenseNumber string) (*LoginResponse, error) {
	body := map[string]string{"license_number": licenseNumber}
	var out LoginResponse
	if err := c.do(ctx, "broker login", http.MethodPost, "/brokers/login", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StartJob starts a new job for a vehicle on behalf of a broker.
func (c *Client) StartJob(ctx context.Context, brokerID int, vehicleNumber string) (*StartJobResponse, error) {
	body := map[string]string{"vehicle_number": vehicleNumber}
	path := "/brokers/" + strconv.Itoa(brokerID) + "/start-job"
	var out StartJobResponse
	if err := c.do(ctx, "start job", http.MethodPost, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyOTP verifies a 6-digit OTP for a phone number.
func (c *Client) VerifyOTP(ctx context.Context, phone, otp string) (*VerifyOTPResponse, error) {
	body := map[string]string{"phone": phone, "otp": otp}
	var out VerifyOTPResponse
	if err := c.do(ctx, "verify otp", http.MethodPost, "/brokers/verify-otp", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CalculateFee asks the platform to compute the fee breakdown for an
// application type and vehicle class. The client performs no arithmetic.
func (c *Client) CalculateFee(ctx context.Context, applicationID int, applicationType, vehicleClass string) (*FeeEstimate, error) {
	body := map[string]string{
		"application_type": applicationType,
		"vehicle_class":    vehicleClass,
	}
	path := "/applications/" + strconv.Itoa(applicationID) + "/calculate-fee"
	var out FeeEstimate
	if err := c.do(ctx, "calculate fee", http.MethodPost, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitComplaint files a complaint against an application.
func (c *Client) SubmitComplaint(ctx context.Context, req ComplaintCreate) (*ComplaintResponse, error) {
	var out ComplaintResponse
	if err := c.do(ctx, "submit complaint", http.MethodPost, "/complaints", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListComplaints fetches complaints, optionally filtered by broker and
// status. Zero brokerID / empty status mean no filter.
func (c *Client) ListComplaints(ctx context.Context, brokerID int, status string) ([]Complaint, error) {
	params := url.Values{}
	if brokerID != 0 {
		params.Set("broker_id", strconv.Itoa(brokerID))
	}
	if status != "" {
		params.Set("status", status)
	}
	path := "/complaints"
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}
	var out []Complaint
	if err := c.do(ctx, "list complaints", http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ProcessPayment submits a payment for an application.
func (c *Client) ProcessPayment(ctx context.Context, req PaymentRequest) (*PaymentResponse, error) {
	var out PaymentResponse
	if err := c.do(ctx, "process payment", http.MethodPost, "/payments/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetPayment fetches the payment record for an application.
func (c *Client) GetPayment(ctx context.Context, applicationID int) (*PaymentResponse, error) {
	path := "/payments/" + strconv.Itoa(applicationID)
	var out PaymentResponse
	if err := c.do(ctx, "get payment", http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ApproveApplication approves an application on behalf of a broker.
func (c *Client) ApproveApplication(ctx context.Context, applicationID, approvedBy int) (*ActionResponse, error) {
	body := map[string]int{"approved_by": approvedBy}
	path := "/applications/" + strconv.Itoa(applicationID) + "/approve"
	var out ActionResponse
	if err := c.do(ctx, "approve application", http.MethodPost, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RejectApplication rejects an application with a reason.
func (c *Client) RejectApplication(ctx context.Context, applicationID, rejectedBy int, reason string) (*ActionResponse, error) {
	body := map[string]any{"rejected_by": rejectedBy, "reason": reason}
	path := "/applications/" + strconv.Itoa(applicationID) + "/reject"
	var out ActionResponse
	if err := c.do(ctx, "reject application", http.MethodPost, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCitizen registers a new citizen.
func (c *Client) CreateCitizen(ctx context.Context, req CitizenCreate) (*Citizen, error) {
	var out Citizen
	if err := c.do(ctx, "create citizen", http.MethodPost, "/citizens/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateApplication submits a new application. The response carries the
// platform's fraud verdict in IsFraud.
func (c *Client) CreateApplication(ctx context.Context, req ApplicationCreate) (*Application, error) {
	var out Application
	if err := c.do(ctx, "create application", http.MethodPost, "/applications/", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListApplications fetches all applications.
func (c *Client) ListApplications(ctx context.Context) ([]Application, error) {
	var out []Application
	if err := c.do(ctx, "list applications", http.MethodGet, "/applications/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Analytics fetches the platform-wide counters snapshot.
func (c *Client) Analytics(ctx context.Context) (*Analytics, error) {
	var out Analytics
	if err := c.do(ctx, "analytics", http.MethodGet, "/analytics/", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SupportInfo fetches the helpdesk contact card.
func (c *Client) SupportInfo(ctx context.Context) (*SupportInfo, error) {
	var out SupportInfo
	if err := c.do(ctx, "support info", http.MethodGet, "/support/info", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Chat sends a message to the AI assistant and returns its reply text.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	body := map[string]string{"message": message}
	var out struct {
		Response string `json:"response"`
	}
	if err := c.do(ctx, "chat", http.MethodPost, "/chat/", body, &out); err != nil {
		return "", err
	}
	return out.Response, nil
}

// DetectForgery submits a base64-encoded document image for analysis.
func (c *Client) DetectForgery(ctx context.Context, imageBase64 string) (*ForgeryResult, error) {
	body := map[string]string{"image": imageBase64}
	var out ForgeryResult
	if err := c.do(ctx, "detect forgery", http.MethodPost, "/detect-forgery/", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
