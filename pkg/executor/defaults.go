package executor

import "github.com/datablast-analytics/blast-redshift/pkg/task"

// DefaultExecutors are set to NoOp executors by default. It serves both as a safe default and a list of supported task types.
var DefaultExecutors = map[string]Operator{
	task.TypeRedshiftQuery: NoOpOperator{},
	task.TypeRedshiftExcel: NoOpOperator{},
	task.TypeEmpty:         NoOpOperator{},
}

// NewOperatorMap returns a copy of the defaults with the given operators registered on top.
func NewOperatorMap(operators map[string]Operator) map[string]Operator {
	result := make(map[string]Operator, len(DefaultExecutors)+len(operators))
	for taskType, operator := range DefaultExecutors {
		result[taskType] = operator
	}
	for taskType, operator := range operators {
		result[taskType] = operator
	}

	return result
}
