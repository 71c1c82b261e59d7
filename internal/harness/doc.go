// Package harness runs query scenarios against datasets and checks the
// results.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	dataset: ../data/states.json     # relative to the scenario file
//	# or inline:
//	records:
//	  - { state: Texas, region: South }
//	queries:
//	  - query: "SELECT state FROM t WHERE region = 'South'"
//	    expect:
//	      count: 1
//	      results:
//	        - { state: Texas }
//	  - query: "SELECT * FROM t LIMIT x"
//	    expect:
//	      error: limit_format
//
// Expected results are compared in order, with strict value typing: 1 and
// "1" are different values. Field order within a record does not matter.
//
// A scenario can also be compared as a whole against a golden file holding
// the JSON snapshot of every query's output (see RunWithGolden).
package harness
