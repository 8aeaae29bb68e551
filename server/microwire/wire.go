package microwire

// ExecuteRequest is a single command: either a SQL statement or a dot-prefixed
// meta command (".tables", ".schema <table>").
type ExecuteRequest struct {
	ID  uint64 `json:"id"`
	SQL string `json:"sql"`
}

// ExecuteResponse answers one request ID. Rows hold plain JSON scalars;
// absent values are null.
type ExecuteResponse struct {
	ID       uint64   `json:"id"`
	Columns  []string `json:"columns,omitempty"`
	Rows     [][]any  `json:"rows,omitempty"`
	Affected int      `json:"affected"`
	Error    string   `json:"error,omitempty"`
}
