package service

import (
	"testing"

	"github.com/nordgaard/saiborg-be/types"
	"github.com/stretchr/testify/assert"
)

func TestClassifyCategory(t *testing.T) {
	s := NewIntentService()

	tests := []struct {
		name string
		text string
		want types.IntentCategory
	}{
		{
			name: "health check wins over generic monday",
			text: "kør lige en monday test",
			want: types.IntentHealthCheck,
		},
		{
			name: "health check is case insensitive",
			text: "MONDAY TEST",
			want: types.IntentHealthCheck,
		},
		{
			name: "health check wins even with crm phrases present",
			text: "monday test og find kunden Acme i crm",
			want: types.IntentHealthCheck,
		},
		{
			name: "monday keyword",
			text: "find kunden Acme i monday",
			want: types.IntentCrmLookup,
		},
		{
			name: "crm keyword alone",
			text: "slå Acme op i CRM",
			want: types.IntentCrmLookup,
		},
		{
			name: "no keyword falls through to general QA",
			text: "hvad koster en licens?",
			want: types.IntentGeneralQA,
		},
		{
			name: "empty message is general QA",
			text: "",
			want: types.IntentGeneralQA,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Classify(tt.text)
			assert.Equal(t, tt.want, got.Category)
		})
	}
}

func TestClassifyFetchStrategy(t *testing.T) {
	s := NewIntentService()

	tests := []struct {
		name string
		text string
		want types.FetchStrategy
	}{
		{
			name: "overview phrase fetches all records",
			text: "giv mig et overblik over vores leads i monday",
			want: types.FetchAllRecords,
		},
		{
			name: "alle kunder fetches all records",
			text: "vis alle kunder i crm",
			want: types.FetchAllRecords,
		},
		{
			name: "overview wins regardless of order of appearance",
			text: "find kunden Acme i monday og vis alle leads",
			want: types.FetchAllRecords,
		},
		{
			name: "named lookup searches by name",
			text: "find kunden Acme i monday",
			want: types.FetchSearchByName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Classify(tt.text)
			assert.Equal(t, types.IntentCrmLookup, got.Category)
			assert.Equal(t, tt.want, got.Strategy)
		})
	}
}

func TestClassifyOutputMode(t *testing.T) {
	s := NewIntentService()

	tests := []struct {
		name string
		text string
		want types.OutputMode
	}{
		{
			name: "email phrase",
			text: "kunden Acme i monday – skriv en opfølgningsmail",
			want: types.ModeEmailFollowup,
		},
		{
			name: "meeting phrase",
			text: "hjælp med mødeforberedelse for Acme i monday",
			want: types.ModeMeetingPrep,
		},
		{
			name: "next steps phrase",
			text: "hvad er næste skridt for Acme i crm",
			want: types.ModeNextSteps,
		},
		{
			name: "default is summary",
			text: "find kunden Acme i monday",
			want: types.ModeSummary,
		},
		{
			name: "email outranks meeting when both match",
			text: "skriv en mail til Acme efter vores salgsmøde, se monday",
			want: types.ModeEmailFollowup,
		},
		{
			name: "meeting outranks next steps when both match",
			text: "forbered møde med Acme og næste skridt, se crm",
			want: types.ModeMeetingPrep,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Classify(tt.text)
			assert.Equal(t, types.IntentCrmLookup, got.Category)
			assert.Equal(t, tt.want, got.Mode)
		})
	}
}
