package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nordgaard/saiborg-be/types"
	"go.uber.org/zap"
)

const contextSeparator = "\n\n---\n\n"

const (
	ragApology = "Beklager, jeg kunne ikke generere et svar lige nu. Prøv igen senere."
	crmApology = "Beklager, jeg kunne ikke formatere Monday-resultaterne lige nu."
)

const ragPromptTemplate = `
Du er SAIBORG – en professionel, præcis og hjælpsom dansk AI-assistent.

DIT MÅL:
- Giv det bedst mulige svar på brugerens spørgsmål.
- Brug dokument-konteksten som PRIMÆR KILDE.
- Hvis konteksten ikke er relevant, så forklar, hvad du kan svare ud fra generel viden.
- Svar altid på klart, flydende og professionelt dansk.

BRUGERENS SPØRGSMÅL:
"""%s"""

DOKUMENT-KONTEKST:
"""%s"""

REGLER:
1) Du må aldrig opfinde tal, priser eller specifikke fakta, der ikke står i konteksten.
2) Hvis noget er uklart eller mangler i materialet, skal du sige det tydeligt.
3) Vær kortfattet, præcis og venlig i tonen.

OUTPUTFORMAT:
- Start med en 1–2 linjers opsummering.
- Giv derefter et struktureret svar (punktopstilling eller korte afsnit).
`

const crmSummaryPromptTemplate = `
Du er SAIBORG – en professionel dansk CRM-assistent.
Dit svar skal være kort, klart og salgsorienteret.

OPGAVEN:
- Opsummer lead/kunde på en naturlig og menneskelig måde.
- Brug almindeligt dansk, ikke rå kolonnenavne.
- Giv kun de vigtigste fakta: navn, rolle/titel, virksomhed, status og email.
- Giv gerne en kort anbefaling (fx "bør følges op", "venter på svar", "kan være varmt lead").
- Hvis der er flere matches: brug punktform med én linje per lead.

FORMAT:
- Overskrift: "**[Firma] – Kontakt: [Navn]**"
- Kort tekst på 1–3 linjer, der forklarer status.
- Kontaktinfo nederst i en punktopstilling.
- Ingen tekniske detaljer som IDs, JSON, kolonne-id'er osv.

DATA FRA MONDAY:
%s

BRUGERENS SPØRGSMÅL:
"""%s"""
`

const crmEmailPromptTemplate = `
Du er SAIBORG – en professionel dansk CRM-assistent.

OPGAVEN:
- Skriv et færdigt, venligt og salgsorienteret opfølgningsmail-udkast på dansk.
- Brug data fra Monday til at sætte scenen (navn, firma, kontekst, status).
- Foreslå tydeligt næste skridt (fx book et møde, sende materiale, bede om svar).

FORMAT:
- Emnelinje øverst.
- Derefter en kort, personlig mailtekst i 2–5 afsnit.
- Ingen tekniske detaljer som IDs, JSON, kolonnenavne osv.

DATA FRA MONDAY:
%s

BRUGERENS INSTRUKTION:
"""%s"""
`

const crmMeetingPromptTemplate = `
Du er SAIBORG – en dansk mødeforberedelses-assistent.

OPGAVEN:
- Hjælp brugeren med at forberede et salgsmøde/et kundemøde.
- Brug Monday-data til at opsummere: hvem kunden er, hvor sagen står, og hvad der er sket.
- Foreslå 3–7 konkrete punkter til dagsorden og 3–7 spørgsmål, der bør stilles.

FORMAT:
- Kort overblik (2–3 linjer).
- Punktopstilling med: "Status i dag", "Målsætning for mødet", "Forslag til dagsorden", "Vigtige spørgsmål".

DATA FRA MONDAY:
%s

BRUGERENS INSTRUKTION:
"""%s"""
`

const crmNextStepsPromptTemplate = `
Du er SAIBORG – en dansk salgsstrategi-assistent.

OPGAVEN:
- Kig på CRM-data og foreslå helt konkrete næste skridt for sagen.
- Tænk i pipeline-næste trin, ansvarlig person, og realistisk tidslinje.

FORMAT:
- Kort statusopsummering (1–3 linjer).
- Punktopstilling med anbefalede næste skridt, med: hvad der skal gøres, af hvem, og hvornår.

DATA FRA MONDAY:
%s

BRUGERENS INSTRUKTION:
"""%s"""
`

// AnswerService turns gathered context (retrieved chunks or CRM records)
// plus the user's text into a single LLM completion.
type AnswerService struct {
	llm       LLMService
	retriever *RetrieverService
	logger    *zap.Logger
}

func NewAnswerService(llm LLMService, retriever *RetrieverService, logger *zap.Logger) *AnswerService {
	return &AnswerService{
		llm:       llm,
		retriever: retriever,
		logger:    logger,
	}
}

// BuildRAGAnswer answers a general question grounded in the document index.
// The LLM is invoked exactly once; failures produce an apology string, never
// an error.
func (s *AnswerService) BuildRAGAnswer(ctx context.Context, userText string) string {
	chunks := s.retriever.Retrieve(ctx, userText)

	contextParts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		s.logger.Debug("using chunk",
			zap.String("source", chunk.Source),
			zap.Int("page", chunk.Page))
		contextParts = append(contextParts, chunk.Content)
	}
	contextText := strings.Join(contextParts, contextSeparator)

	prompt := fmt.Sprintf(ragPromptTemplate, userText, contextText)
	answer, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		s.logger.Error("error invoking LLM", zap.Error(err))
		return ragApology
	}
	return answer
}

// BuildCRMAnswer formats CRM records through one of the four output-style
// templates. Records are normalized first so the model never sees the raw
// column_values shape.
func (s *AnswerService) BuildCRMAnswer(ctx context.Context, userText string, items []types.MondayItem, mode types.OutputMode) string {
	records := NormalizeRecords(items)
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		s.logger.Error("failed to marshal CRM records", zap.Error(err))
		return crmApology
	}

	var template string
	switch mode {
	case types.ModeEmailFollowup:
		template = crmEmailPromptTemplate
	case types.ModeMeetingPrep:
		template = crmMeetingPromptTemplate
	case types.ModeNextSteps:
		template = crmNextStepsPromptTemplate
	default:
		template = crmSummaryPromptTemplate
	}

	prompt := fmt.Sprintf(template, string(data), userText)
	answer, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		s.logger.Error("error invoking LLM for Monday answer", zap.Error(err))
		return crmApology
	}
	return answer
}

// NormalizeRecords flattens raw Monday items into name/id/column-map form.
func NormalizeRecords(items []types.MondayItem) []types.CRMRecord {
	records := make([]types.CRMRecord, 0, len(items))
	for _, item := range items {
		columns := make(map[string]string, len(item.ColumnValues))
		for _, cv := range item.ColumnValues {
			columns[cv.ID] = cv.Text
		}
		records = append(records, types.CRMRecord{
			Name:    item.Name,
			ID:      item.ID,
			Columns: columns,
		})
	}
	return records
}
