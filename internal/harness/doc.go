// Package harness runs cart scenarios written in YAML.
//
// A scenario optionally loads a storefront page, executes a flow of cart
// operations against a fresh in-memory store through the storefront
// controller, and evaluates assertions on the final cart and the order log.
// Execution is deterministic: order ids come from a sequence generator and
// notices expire on a manual clock, so traces can be compared against golden
// files.
//
// Example scenario:
//
//	name: merge_repeat_adds
//	description: "Adding the same product twice merges into one line"
//	page_file: ../pages/catalog.html
//	flow:
//	  - op: add
//	    trigger: 0
//	  - op: add
//	    trigger: 0
//	assertions:
//	  - type: item_count
//	    count: 2
//	  - type: line
//	    id: JM93-001
//	    qty: 2
package harness
