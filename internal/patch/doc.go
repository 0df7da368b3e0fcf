// Package patch loads node graphs from HCL files.
//
// A patch declares value types, expression-backed node types, node instances
// with their local values, links between output and input ports, and the
// terminal node a pass starts from:
//
//	value_type "Weight" {
//	  type    = number
//	  default = 1
//	}
//
//	node_type "Average" {
//	  input "a" { type = "Float" }
//	  input "b" { type = "Float" }
//	  output "out" {
//	    type = "Float"
//	    expr = (inputs.a + inputs.b) / 2
//	  }
//	}
//
//	node "speed" {
//	  type    = "Slider"
//	  outputs = { value = 0.5 }
//	}
//	node "avg" { type = "Average" }
//
//	link {
//	  from = speed.value
//	  to   = avg.a
//	}
//
//	terminal = "avg"
//
// Declarations are applied in that order across all files, so a file may use
// types declared in another one. A loaded patch is rejected if its links form
// a cycle.
package patch
