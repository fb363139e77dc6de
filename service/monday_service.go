package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nordgaard/saiborg-be/config"
	"github.com/nordgaard/saiborg-be/types"
	"go.uber.org/zap"
)

const (
	defaultMondayAPIURL  = "https://api.monday.com/v2"
	defaultMondayTimeout = 30 * time.Second
	defaultItemLimit     = 500
)

const fetchItemsQuery = `
query($board_id: [ID!]!, $limit: Int!) {
  boards(ids: $board_id) {
    items_page(limit: $limit) {
      items {
        id
        name
        column_values {
          id
          text
        }
      }
    }
  }
}
`

const meQuery = `query { me { name email } }`

// MondayService reads CRM records over monday.com's GraphQL API. All calls
// are single attempts with a bounded timeout; there are no retries.
type MondayService struct {
	apiKey     string
	apiURL     string
	itemLimit  int
	httpClient *http.Client
	logger     *zap.Logger
}

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

func NewMondayService(cfg config.MondayConfig, logger *zap.Logger) *MondayService {
	apiURL := cfg.APIURL
	if apiURL == "" {
		apiURL = defaultMondayAPIURL
	}
	timeout := defaultMondayTimeout
	if cfg.Timeout > 0 {
		timeout = time.Duration(cfg.Timeout) * time.Second
	}
	itemLimit := cfg.ItemLimit
	if itemLimit <= 0 {
		itemLimit = defaultItemLimit
	}
	return &MondayService{
		apiKey:    cfg.APIKey,
		apiURL:    apiURL,
		itemLimit: itemLimit,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Configured reports whether an API key is present. Without one the CRM
// features degrade to a "not available" reply instead of failing.
func (s *MondayService) Configured() bool {
	return s.apiKey != ""
}

// query posts one GraphQL document and decodes the data payload into out.
// A non-empty errors list in the response is a fatal failure for the call.
func (s *MondayService) query(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	if s.apiKey == "" {
		return errors.New("MONDAY_API_KEY is missing")
	}
	if variables == nil {
		variables = map[string]interface{}{}
	}

	payload, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Error("request to Monday API failed", zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		err := fmt.Errorf("monday request failed: %s: %s", resp.Status, strings.TrimSpace(string(body)))
		s.logger.Error("request to Monday API failed", zap.Error(err))
		return err
	}

	var gqlResp graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&gqlResp); err != nil {
		return err
	}
	if len(gqlResp.Errors) > 0 {
		err := fmt.Errorf("monday API error: %s", gqlResp.Errors[0].Message)
		s.logger.Error("Monday API returned errors", zap.Any("errors", gqlResp.Errors))
		return err
	}

	if out != nil && gqlResp.Data != nil {
		return json.Unmarshal(gqlResp.Data, out)
	}
	return nil
}

// Me runs the trivial identity query used for health-checking.
func (s *MondayService) Me(ctx context.Context) (*types.MondayAccount, error) {
	var data struct {
		Me *types.MondayAccount `json:"me"`
	}
	if err := s.query(ctx, meQuery, nil, &data); err != nil {
		return nil, err
	}
	if data.Me == nil {
		return nil, errors.New("no user info returned")
	}
	return data.Me, nil
}

// FetchAllItems fetches up to the configured limit of records on one board.
// Remote failures are logged and propagated.
func (s *MondayService) FetchAllItems(ctx context.Context, boardID string) ([]types.MondayItem, error) {
	var data struct {
		Boards []struct {
			ItemsPage struct {
				Items []types.MondayItem `json:"items"`
			} `json:"items_page"`
		} `json:"boards"`
	}
	variables := map[string]interface{}{
		"board_id": []string{boardID},
		"limit":    s.itemLimit,
	}
	if err := s.query(ctx, fetchItemsQuery, variables, &data); err != nil {
		s.logger.Error("failed to get items from board", zap.String("board_id", boardID), zap.Error(err))
		return nil, err
	}
	if len(data.Boards) == 0 {
		s.logger.Warn("no boards found", zap.String("board_id", boardID))
		return []types.MondayItem{}, nil
	}
	items := data.Boards[0].ItemsPage.Items
	s.logger.Info("fetched items from board", zap.Int("count", len(items)), zap.String("board_id", boardID))
	return items, nil
}

// SearchItemsByText loads the board and filters client-side: a record
// matches when its name or any column text contains the term,
// case-insensitively. An empty term returns nothing without a remote call,
// and remote failures degrade to an empty result.
func (s *MondayService) SearchItemsByText(ctx context.Context, boardID, text string) []types.MondayItem {
	term := strings.ToLower(strings.TrimSpace(text))
	if term == "" {
		s.logger.Warn("empty search term provided")
		return []types.MondayItem{}
	}

	items, err := s.FetchAllItems(ctx, boardID)
	if err != nil {
		s.logger.Error("failed to search items", zap.Error(err))
		return []types.MondayItem{}
	}

	results := make([]types.MondayItem, 0)
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), term) {
			results = append(results, item)
			continue
		}
		for _, cv := range item.ColumnValues {
			if strings.Contains(strings.ToLower(cv.Text), term) {
				results = append(results, item)
				break
			}
		}
	}

	s.logger.Info("search completed", zap.Int("matches", len(results)), zap.String("term", term))
	return results
}
