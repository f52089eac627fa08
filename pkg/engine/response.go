package engine

// Response is what the player sees after a message: display text and the
// replies offered as buttons. No options means free text is expected.
type Response struct {
	Text    string   `json:"text"`
	Options []string `json:"options,omitempty"`
	Columns int      `json:"columns,omitempty"`
}

// Rows lays the options out in rows of Columns buttons.
func (r *Response) Rows() [][]string {
	if len(r.Options) == 0 {
		return nil
	}
	columns := max(1, r.Columns)
	rows := make([][]string, 0, (len(r.Options)+columns-1)/columns)
	for start := 0; start < len(r.Options); start += columns {
		end := min(start+columns, len(r.Options))
		rows = append(rows, r.Options[start:end])
	}
	return rows
}
