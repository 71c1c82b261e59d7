package testutil

import "github.com/roach88/jsonsql/internal/ir"

// StatesRecords returns three state records with region and population.
// Populations are integers; no field is a numeric string.
func StatesRecords() []ir.Record {
	return []ir.Record{
		ir.NewRecord(
			ir.F("state", ir.String("California")),
			ir.F("region", ir.String("West")),
			ir.F("pop", ir.Int(39538223)),
		),
		ir.NewRecord(
			ir.F("state", ir.String("Texas")),
			ir.F("region", ir.String("South")),
			ir.F("pop", ir.Int(29145505)),
		),
		ir.NewRecord(
			ir.F("state", ir.String("Florida")),
			ir.F("region", ir.String("South")),
			ir.F("pop", ir.Int(21538187)),
		),
	}
}

// States returns StatesRecords as a dataset.
func States() *ir.Dataset {
	return ir.NewDataset(StatesRecords())
}

// PeopleRecords returns people records with mixed field types.
// Bob's age is a numeric string and Carol has no salary field.
func PeopleRecords() []ir.Record {
	return []ir.Record{
		ir.NewRecord(
			ir.F("name", ir.String("Alice")),
			ir.F("age", ir.Int(30)),
			ir.F("salary", ir.Float(85000.5)),
			ir.F("region", ir.String("North")),
		),
		ir.NewRecord(
			ir.F("name", ir.String("Bob")),
			ir.F("age", ir.String("25")),
			ir.F("salary", ir.Int(62000)),
			ir.F("region", ir.String("South")),
		),
		ir.NewRecord(
			ir.F("name", ir.String("Carol")),
			ir.F("age", ir.Int(41)),
			ir.F("region", ir.String("South")),
			ir.F("active", ir.Bool(true)),
		),
	}
}

// People returns PeopleRecords as a dataset.
func People() *ir.Dataset {
	return ir.NewDataset(PeopleRecords())
}

// SpecialsRecords returns records whose string values carry punctuation,
// quotes and non-ASCII characters.
func SpecialsRecords() []ir.Record {
	return []ir.Record{
		ir.NewRecord(
			ir.F("id", ir.Int(1)),
			ir.F("description", ir.String("This is a @#$%ˆ&*test!")),
		),
		ir.NewRecord(
			ir.F("id", ir.Int(2)),
			ir.F("description", ir.String("Plain text")),
		),
		ir.NewRecord(
			ir.F("id", ir.Int(3)),
			ir.F("description", ir.String("and (or) AND")),
		),
	}
}

// Specials returns SpecialsRecords as a dataset.
func Specials() *ir.Dataset {
	return ir.NewDataset(SpecialsRecords())
}

// Duplicates returns a dataset of structurally identical records.
func Duplicates(n int) *ir.Dataset {
	records := make([]ir.Record, n)
	for i := range records {
		records[i] = ir.NewRecord(ir.F("k", ir.String("v")))
	}
	return ir.NewDataset(records)
}
