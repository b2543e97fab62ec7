package ecscore

import (
	"fmt"

	"github.com/TheBitDrifter/bark"
)

// InvalidParametersError signals a nil world, nil type, or nil source
// pointer where one is required.
type InvalidParametersError struct {
	Context string
}

func (e InvalidParametersError) Error() string {
	return fmt.Sprintf("ecscore: invalid parameters: %s", e.Context)
}

// InvalidComponentSizeError signals that Set's declared payload size
// disagrees with the component's registered size.
type InvalidComponentSizeError struct {
	Component ComponentID
	Declared  int
	Got       int
}

func (e InvalidComponentSizeError) Error() string {
	return fmt.Sprintf(
		"ecscore: component %d declared size %d, got %d bytes",
		e.Component, e.Declared, e.Got,
	)
}

// UnknownTypeIDError signals a TypeID not present in the registry.
type UnknownTypeIDError struct {
	Type TypeID
}

func (e UnknownTypeIDError) Error() string {
	return fmt.Sprintf("ecscore: unknown type id %d", e.Type)
}

// TypeNotAnEntityError signals that TypeToEntity was called on a
// TypeID whose component list length is not exactly one.
type TypeNotAnEntityError struct {
	Type  TypeID
	Count int
}

func (e TypeNotAnEntityError) Error() string {
	return fmt.Sprintf(
		"ecscore: type %d names %d components, want exactly 1", e.Type, e.Count,
	)
}

// abort wraps err with a stack trace and panics. Every fatal precondition
// violation in this package goes through this single choke point.
func abort(err error) {
	panic(bark.AddTrace(err))
}
