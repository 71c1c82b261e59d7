package source

import (
	"fmt"
	"math"

	"gopkg.in/yaml.v3"

	"github.com/roach88/jsonsql/internal/ir"
)

// DecodeYAML decodes a YAML sequence of flat mappings.
func DecodeYAML(data []byte) ([]ir.Record, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if doc.Kind == 0 {
		// Empty document.
		return nil, nil
	}
	return DecodeYAMLRecords(&doc)
}

// DecodeYAMLRecords converts a sequence node of flat mappings into records.
// Mapping keys keep their document order. A document node is unwrapped.
func DecodeYAMLRecords(node *yaml.Node) ([]ir.Record, error) {
	node = resolveAlias(node)
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil, nil
		}
		node = resolveAlias(node.Content[0])
	}
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: yaml dataset must be a sequence of mappings", node.Line)
	}

	records := make([]ir.Record, 0, len(node.Content))
	for i, item := range node.Content {
		rec, err := yamlRecord(i, resolveAlias(item))
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func yamlRecord(index int, node *yaml.Node) (ir.Record, error) {
	if node.Kind != yaml.MappingNode {
		return ir.Record{}, fmt.Errorf("record %d (line %d): expected mapping", index, node.Line)
	}

	var rec ir.Record
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], resolveAlias(node.Content[i+1])
		name := keyNode.Value

		val, ok, err := yamlScalar(valNode)
		if err != nil {
			return ir.Record{}, fieldError(index, name, err.Error())
		}
		if ok {
			rec.Set(name, val)
		}
	}
	return rec, nil
}

// yamlScalar converts a scalar node by its resolved tag. Null reports ok=false.
func yamlScalar(node *yaml.Node) (ir.Value, bool, error) {
	if node.Kind != yaml.ScalarNode {
		return nil, false, fmt.Errorf("line %d: nested values are not supported", node.Line)
	}

	switch node.ShortTag() {
	case "!!null":
		return nil, false, nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return nil, false, err
		}
		return ir.Bool(b), true, nil
	case "!!int":
		var n int64
		if err := node.Decode(&n); err == nil {
			return ir.Int(n), true, nil
		}
		return yamlFloat(node)
	case "!!float":
		return yamlFloat(node)
	default:
		return ir.String(node.Value), true, nil
	}
}

func yamlFloat(node *yaml.Node) (ir.Value, bool, error) {
	var f float64
	if err := node.Decode(&f); err != nil {
		return nil, false, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false, fmt.Errorf("line %d: %s is not a finite number", node.Line, node.Value)
	}
	return ir.Float(f), true, nil
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}
