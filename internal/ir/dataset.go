package ir

// Row pairs a record with its original position in the dataset.
// Index is the record's identity: two rows with structurally identical
// records are still distinct when their indexes differ.
type Row struct {
	Index  int
	Record Record
}

// Dataset is an ordered, immutable collection of records.
// Each record is assigned a 0-based index at construction which is never
// reassigned.
type Dataset struct {
	rows []Row
}

// NewDataset builds a dataset from records in order.
// The records are cloned so later changes by the caller are not observed.
func NewDataset(records []Record) *Dataset {
	rows := make([]Row, len(records))
	for i, r := range records {
		rows[i] = Row{Index: i, Record: r.Clone()}
	}
	return &Dataset{rows: rows}
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.rows)
}

// Rows returns every row in original order.
// The slice is shared with the dataset and must not be modified.
func (d *Dataset) Rows() []Row {
	return d.rows
}

// Row returns the row at the given original index.
func (d *Dataset) Row(index int) (Row, bool) {
	if index < 0 || index >= len(d.rows) {
		return Row{}, false
	}
	return d.rows[index], true
}
