package api

// Citizen is a citizen record as returned by the platform.
type Citizen struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Aadhaar string `json:"aadhaar"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// CitizenCreate is the payload for registering a new citizen.
type CitizenCreate struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Aadhaar string `json:"aadhaar"`
	Address string `json:"address"`
}

// Broker is a registered broker with aggregate performance ratings.
type Broker struct {
	ID               int     `json:"id"`
	Name             string  `json:"name"`
	LicenseNumber    string  `json:"license_number"`
	Phone            string  `json:"phone"`
	Email            string  `json:"email"`
	Specialization   string  `json:"specialization"`
	AvgPunctuality   float64 `json:"avg_punctuality"`
	AvgQuality       float64 `json:"avg_quality"`
	AvgCompliance    float64 `json:"avg_compliance"`
	AvgCommunication float64 `json:"avg_communication"`
	AvgOverall       float64 `json:"avg_overall"`
}

// Application is a vehicle-registration application record.
type Application struct {
	ID              int    `json:"id"`
	CitizenID       int    `json:"citizen_id"`
	BrokerID        int    `json:"broker_id"`
	ApplicationType string `json:"application_type"`
	Status          string `json:"status"`
	SubmissionDate  string `json:"submission_date"`
	Documents       string `json:"documents"`
	IsFraud         bool   `json:"is_fraud"`
}

// ApplicationCreate is the payload for submitting a new application.
type ApplicationCreate struct {
	CitizenID       int    `json:"citizen_id"`
	BrokerID        int    `json:"broker_id"`
	ApplicationType string `json:"application_type"`
	Documents       string `json:"documents"`
}

// Analytics is the platform-wide counters snapshot.
type Analytics struct {
	TotalCitizens        int `json:"total_citizens"`
	TotalBrokers         int `json:"total_brokers"`
	TotalApplications    int `json:"total_applications"`
	ApprovedApplications int `json:"approved_applications"`
}

// LoginResponse is returned by broker login. A false Success carries the
// rejection reason in Message; it is not a transport error.
type LoginResponse struct {
	Success bool    `json:"success"`
	Broker  *Broker `json:"broker,omitempty"`
	Message string  `json:"message,omitempty"`
}

// StartJobResponse is returned when a broker starts a job for a vehicle.
type StartJobResponse struct {
	Success        bool           `json:"success"`
	Message        string         `json:"message"`
	ApplicationID  int            `json:"application_id,omitempty"`
	VehicleDetails map[string]any `json:"vehicle_details,omitempty"`
}

// VerifyOTPResponse is returned by OTP verification.
type VerifyOTPResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	SessionToken string `json:"session_token,omitempty"`
}

// FeeBreakdown decomposes a total charge into its named components.
// All amounts are computed server-side; the client renders them verbatim.
type FeeBreakdown struct {
	BaseFee          float64 `json:"base_fee"`
	ServiceFee       float64 `json:"service_fee"`
	BrokerCommission float64 `json:"broker_commission"`
	TaxGST           float64 `json:"tax_gst"`
	Total            float64 `json:"total"`
}

// FeeEstimate is the calculate-fee response envelope.
type FeeEstimate struct {
	Breakdown       FeeBreakdown `json:"breakdown"`
	ApplicationType string       `json:"application_type,omitempty"`
	VehicleClass    string       `json:"vehicle_class,omitempty"`
}

// Complaint is a dispute record tied to one application and one broker.
// Its status lifecycle is owned entirely by the platform.
type Complaint struct {
	ID            int    `json:"id"`
	BrokerID      int    `json:"broker_id"`
	ApplicationID int    `json:"application_id"`
	ComplaintType string `json:"complaint_type"`
	Description   string `json:"description"`
	Status        string `json:"status"`
	SubmittedDate string `json:"submitted_date"`
	ResolvedDate  string `json:"resolved_date,omitempty"`
}

// ComplaintCreate is the payload for filing a complaint.
type ComplaintCreate struct {
	BrokerID      int    `json:"broker_id"`
	ApplicationID int    `json:"application_id"`
	ComplaintType string `json:"complaint_type"`
	Description   string `json:"description"`
}

// ComplaintResponse acknowledges a filed complaint.
type ComplaintResponse struct {
	Success     bool   `json:"success"`
	ComplaintID int    `json:"complaint_id"`
	Message     string `json:"message"`
}

// SupportInfo is the static helpdesk contact card.
type SupportInfo struct {
	TollFree         string `json:"toll_free"`
	EmergencyContact string `json:"emergency_contact"`
	Email            string `json:"email"`
	WorkingHours     string `json:"working_hours"`
	Helpdesk         string `json:"helpdesk"`
}

// PaymentRequest is the payload for processing a payment. FeeBreakdown
// carries the JSON-encoded breakdown string the platform stores alongside
// the payment record.
type PaymentRequest struct {
	ApplicationID int     `json:"application_id"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"payment_method"`
	FeeBreakdown  string  `json:"fee_breakdown"`
}

// PaymentResponse is returned by payment processing.
type PaymentResponse struct {
	Success       bool    `json:"success"`
	PaymentID     int     `json:"payment_id"`
	TransactionID string  `json:"transaction_id"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"`
	Message       string  `json:"message"`
}

// ActionResponse is the generic success/message envelope returned by
// approve and reject.
type ActionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ForgeryResult is the document forgery verdict for an uploaded image.
type ForgeryResult struct {
	IsForged   bool     `json:"is_forged"`
	Confidence float64  `json:"confidence"`
	Issues     []string `json:"issues"`
}
