package testutil

// FixedQueryIDGenerator returns the same query id every time.
//
// Unlike engine.FixedGenerator which returns ids in sequence, this generator
// always returns the same id, so every debug line of a golden run carries an
// identical query_id.
//
// Thread-safety: FixedQueryIDGenerator is stateless and safe for concurrent use.
type FixedQueryIDGenerator struct {
	id string
}

// NewFixedQueryIDGenerator creates a new fixed query id generator.
// If id is empty, Generate() returns "test-query-default".
func NewFixedQueryIDGenerator(id string) *FixedQueryIDGenerator {
	if id == "" {
		id = "test-query-default"
	}
	return &FixedQueryIDGenerator{id: id}
}

// Generate returns the fixed query id.
//
// Implements engine.QueryIDGenerator interface.
func (g *FixedQueryIDGenerator) Generate() string {
	return g.id
}
