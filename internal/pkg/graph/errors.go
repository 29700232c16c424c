package graph

import "fmt"

// InvalidGraphError reports that a proposed component graph failed
// validation. The refresh that produced it is aborted and the previously
// accepted graph stays current.
type InvalidGraphError struct {
	Reason string
}

func (e *InvalidGraphError) Error() string {
	return fmt.Sprintf("invalid component graph: %s", e.Reason)
}

func invalidGraph(format string, args ...interface{}) error {
	return &InvalidGraphError{Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a query that could not be resolved against the
// current graph.
type NotFoundError struct {
	Reason string
}

func (e *NotFoundError) Error() string {
	return e.Reason
}

func notFound(format string, args ...interface{}) error {
	return &NotFoundError{Reason: fmt.Sprintf(format, args...)}
}
