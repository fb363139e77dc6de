package types

// IntentCategory is the classified purpose of an inbound message.
type IntentCategory string

const (
	IntentHealthCheck IntentCategory = "health_check"
	IntentCrmLookup   IntentCategory = "crm_lookup"
	IntentGeneralQA   IntentCategory = "general_qa"
)

// FetchStrategy decides how CRM records are gathered for a lookup.
type FetchStrategy string

const (
	FetchAllRecords   FetchStrategy = "all_records"
	FetchSearchByName FetchStrategy = "search_by_name"
)

// OutputMode selects which CRM answer template is used.
type OutputMode string

const (
	ModeSummary       OutputMode = "summary"
	ModeEmailFollowup OutputMode = "email_followup"
	ModeMeetingPrep   OutputMode = "meeting_prep"
	ModeNextSteps     OutputMode = "next_steps"
)

// IntentDecision is computed once per inbound message and never persisted.
// Strategy and Mode are only meaningful when Category is IntentCrmLookup.
type IntentDecision struct {
	Category IntentCategory
	Strategy FetchStrategy
	Mode     OutputMode
}
