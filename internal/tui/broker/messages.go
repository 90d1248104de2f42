package broker

import "github.com/sarathi-rto/sarathi/internal/api"

// SessionLoadedMsg carries the persisted broker session at startup.
type SessionLoadedMsg struct {
	Broker *api.Broker
	Err    error
}

// LoginResultMsg carries the outcome of a login attempt.
type LoginResultMsg struct {
	Resp *api.LoginResponse
	Err  error
}

// DashboardLoadedMsg carries a full dashboard snapshot.
type DashboardLoadedMsg struct {
	Broker       *api.Broker
	Applications []api.Application
	Complaints   []api.Complaint
	Support      *api.SupportInfo
	Err          error
}

// ReloadDashboardMsg triggers a fresh dashboard snapshot.
type ReloadDashboardMsg struct{}

// StartJobResultMsg carries the outcome of starting a job.
type StartJobResultMsg struct {
	Resp *api.StartJobResponse
	Err  error
}

// OTPResultMsg carries the outcome of an OTP verification.
type OTPResultMsg struct {
	Resp *api.VerifyOTPResponse
	Err  error
}

// FeeResultMsg carries a fee estimate from the server.
type FeeResultMsg struct {
	Estimate *api.FeeEstimate
	Err      error
}

// PaymentResultMsg carries the outcome of a payment attempt.
type PaymentResultMsg struct {
	Resp *api.PaymentResponse
	Err  error
}

// ComplaintResultMsg carries the outcome of a complaint submission.
type ComplaintResultMsg struct {
	Resp *api.ComplaintResponse
	Err  error
}

// ForgeryResultMsg carries an async document check result. Token matches
// the request counter so stale responses can be discarded.
type ForgeryResultMsg struct {
	Token  int
	Result *api.ForgeryResult
	Err    error
}

// LogoutMsg is sent when the broker logs out.
type LogoutMsg struct{}
