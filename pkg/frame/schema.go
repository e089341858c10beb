package frame

// Schema describes the shape of a table: ordered field names and types.
// It marshals cleanly to JSON for the CLI's schema command.
type Schema struct {
	Fields []FieldSchema `json:"fields"`
	Rows   int           `json:"rows"`
}

// FieldSchema describes a single column.
type FieldSchema struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Schema returns the table's schema in display order.
func (t *Table) Schema() Schema {
	s := Schema{
		Fields: make([]FieldSchema, len(t.cols)),
		Rows:   t.nrows,
	}
	for i, c := range t.cols {
		s.Fields[i] = FieldSchema{Name: c.Name(), Type: c.Type().String()}
	}
	return s
}
