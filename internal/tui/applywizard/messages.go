package applywizard

import "github.com/sarathi-rto/sarathi/internal/api"

// BrokersLoadedMsg carries the broker directory fetched at startup.
type BrokersLoadedMsg struct {
	Brokers []api.Broker
	Err     error
}

// PersonalSubmittedMsg is sent when the personal info step passes validation.
type PersonalSubmittedMsg struct {
	FullName string
	Email    string
}

// BrokerSelectedMsg is sent when a broker is chosen from the directory.
type BrokerSelectedMsg struct {
	BrokerID string
}

// DetailsSubmittedMsg is sent when the application details pass validation.
type DetailsSubmittedMsg struct {
	Details string
}

// SubmitApplicationMsg triggers the final submission from the review step.
type SubmitApplicationMsg struct{}

// SubmissionDoneMsg carries the result of the citizen+application submission.
type SubmissionDoneMsg struct {
	Application *api.Application
	Err         error
}
