package service

import (
	"strings"

	"github.com/nordgaard/saiborg-be/types"
)

// Phrase sets driving the CRM sub-decisions. Matching is case-insensitive
// substring matching over the whole message.
var (
	overviewPhrases = []string{
		"alle kunder", "alle leads", "hvilke leads har vi",
		"hvilke kunder har vi", "overblik over vores leads", "overblik over kunder",
	}

	emailPhrases = []string{
		"skriv en mail", "skriv en e-mail", "skriv email", "skriv en email",
		"formuler en mail", "lav en mail", "follow up mail", "opfølgningsmail",
	}

	meetingPhrases = []string{
		"forbered møde", "forberedelse til møde", "mødeforberedelse",
		"prepare meeting", "prepare for meeting", "salgsmøde", "kundemøde",
	}

	nextStepPhrases = []string{
		"næste skridt", "next steps", "hvad gør vi nu", "hvad er næste skridt",
		"hvad bør jeg gøre nu",
	}
)

type intentRule struct {
	match    func(lower string) bool
	category types.IntentCategory
}

// IntentService is a state-free, rule-based classifier. Rules are evaluated
// in order and the first match wins, so "monday test" is decided before the
// generic "monday" rule can see it.
type IntentService struct {
	rules []intentRule
}

func NewIntentService() *IntentService {
	return &IntentService{
		rules: []intentRule{
			{
				match: func(lower string) bool {
					return strings.Contains(lower, "monday test")
				},
				category: types.IntentHealthCheck,
			},
			{
				match: func(lower string) bool {
					return strings.Contains(lower, "monday") || strings.Contains(lower, "crm")
				},
				category: types.IntentCrmLookup,
			},
			{
				// Terminal rule, always matches.
				match:    func(string) bool { return true },
				category: types.IntentGeneralQA,
			},
		},
	}
}

// Classify decides what an inbound message wants. The fetch strategy and
// output mode are computed for CRM lookups only; both default to their
// respective fallbacks when no phrase matches.
func (s *IntentService) Classify(text string) types.IntentDecision {
	lower := strings.ToLower(text)

	decision := types.IntentDecision{
		Strategy: types.FetchSearchByName,
		Mode:     types.ModeSummary,
	}
	for _, rule := range s.rules {
		if rule.match(lower) {
			decision.Category = rule.category
			break
		}
	}

	if decision.Category != types.IntentCrmLookup {
		return decision
	}

	if containsAny(lower, overviewPhrases) {
		decision.Strategy = types.FetchAllRecords
	}

	// Mode phrase sets can overlap in principle; evaluation order resolves
	// ambiguity: email > meeting > next steps > summary.
	switch {
	case containsAny(lower, emailPhrases):
		decision.Mode = types.ModeEmailFollowup
	case containsAny(lower, meetingPhrases):
		decision.Mode = types.ModeMeetingPrep
	case containsAny(lower, nextStepPhrases):
		decision.Mode = types.ModeNextSteps
	}

	return decision
}

func containsAny(text string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}
