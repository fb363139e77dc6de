package service

import (
	"context"
	"fmt"

	"github.com/nordgaard/saiborg-be/types"
	"go.uber.org/zap"
)

const (
	replyNoMondayKeyHealth = "Jeg har ikke nogen Monday API-nøgle konfigureret."
	replyNoMondayKeyCRM    = "Jeg har ikke nogen Monday API-nøgle konfigureret, så jeg kan ikke læse CRM-data endnu."
	replyHealthFailed      = "❌ Jeg kunne ikke læse brugerinfo fra Monday – tjek API-nøglen."
	replyNoMatches         = "Jeg kunne ikke finde nogen kunder/leads i Monday, der matcher din forespørgsel."
)

// CRMService is the CRM data-access contract the pipeline depends on.
type CRMService interface {
	Configured() bool
	Me(ctx context.Context) (*types.MondayAccount, error)
	FetchAllItems(ctx context.Context, boardID string) ([]types.MondayItem, error)
	SearchItemsByText(ctx context.Context, boardID, text string) []types.MondayItem
}

// AssistantService runs the per-message pipeline: classify, gather context
// from the CRM or the document index, compose, reply. Each message produces
// exactly one reply.
type AssistantService struct {
	intents *IntentService
	answers *AnswerService
	crm     CRMService
	boardID string
	logger  *zap.Logger
}

func NewAssistantService(intents *IntentService, answers *AnswerService, crm CRMService, boardID string, logger *zap.Logger) *AssistantService {
	return &AssistantService{
		intents: intents,
		answers: answers,
		crm:     crm,
		boardID: boardID,
		logger:  logger,
	}
}

// HandleMessage never panics past this point: unexpected failures become a
// generic error reply so the chat surface always hears back once.
func (s *AssistantService) HandleMessage(ctx context.Context, msg types.InboundMessage) (reply types.OutboundReply) {
	reply = types.OutboundReply{
		ChannelID: msg.ChannelID,
		ThreadID:  msg.ThreadID,
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic in message pipeline", zap.Any("panic", r))
			reply.ReplyText = fmt.Sprintf("❌ Der skete en fejl: %v", r)
		}
	}()

	userText := msg.RawText
	s.logger.Info("received message", zap.String("text", userText))

	decision := s.intents.Classify(userText)
	switch decision.Category {
	case types.IntentHealthCheck:
		reply.ReplyText = s.handleHealthCheck(ctx)
	case types.IntentCrmLookup:
		reply.ReplyText = s.handleCrmLookup(ctx, userText, decision)
	default:
		reply.ReplyText = s.answers.BuildRAGAnswer(ctx, userText)
	}
	return reply
}

func (s *AssistantService) handleHealthCheck(ctx context.Context) string {
	if !s.crm.Configured() {
		return replyNoMondayKeyHealth
	}
	me, err := s.crm.Me(ctx)
	if err != nil {
		s.logger.Error("Monday health check failed", zap.Error(err))
		return replyHealthFailed
	}
	return fmt.Sprintf("✅ Monday-forbindelse virker! Du er logget ind som: %s (%s)", me.Name, me.Email)
}

func (s *AssistantService) handleCrmLookup(ctx context.Context, userText string, decision types.IntentDecision) string {
	if !s.crm.Configured() {
		return replyNoMondayKeyCRM
	}

	var items []types.MondayItem
	if decision.Strategy == types.FetchAllRecords {
		s.logger.Info("Monday lookup: fetching all items from board")
		fetched, err := s.crm.FetchAllItems(ctx, s.boardID)
		if err != nil {
			s.logger.Error("Monday lookup failed", zap.Error(err))
			return fmt.Sprintf("❌ Der skete en fejl: %v", err)
		}
		items = fetched
	} else {
		searchTerm := ExtractCustomerName(userText)
		s.logger.Info("Monday lookup", zap.String("search_term", searchTerm))
		items = s.crm.SearchItemsByText(ctx, s.boardID, searchTerm)
	}

	if len(items) == 0 {
		return replyNoMatches
	}
	s.logger.Info("Monday lookup succeeded", zap.Int("items", len(items)))
	return s.answers.BuildCRMAnswer(ctx, userText, items, decision.Mode)
}
