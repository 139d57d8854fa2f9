package common

import "context"

// SystemOperator is recorded for changes made outside an authenticated request.
const SystemOperator = "system"

type operatorKey struct{}

// WithOperator returns a context that records who is making changes.
func WithOperator(ctx context.Context, operator string) context.Context {
	return context.WithValue(ctx, operatorKey{}, operator)
}

// OperatorFrom returns the operator stored in ctx, or SystemOperator.
func OperatorFrom(ctx context.Context) string {
	if op, ok := ctx.Value(operatorKey{}).(string); ok && op != "" {
		return op
	}
	return SystemOperator
}
