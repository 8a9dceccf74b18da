// Package opflow is the public facade of the execution engine. It
// compiles an operator topology plus its transform map into an immutable
// Program that can be called concurrently with heterogeneous inputs.
package opflow
