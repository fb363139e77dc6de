package types

// MondayItem is a CRM record exactly as the monday.com API returns it.
type MondayItem struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	ColumnValues []MondayColumnValue `json:"column_values"`
}

type MondayColumnValue struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// MondayAccount is the authenticated account returned by the health query.
type MondayAccount struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CRMRecord is the normalized form of a MondayItem handed to the language
// model: display name, id and a flat column-id to display-text map.
type CRMRecord struct {
	Name    string            `json:"name"`
	ID      string            `json:"id"`
	Columns map[string]string `json:"columns"`
}
