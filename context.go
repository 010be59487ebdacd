package tokenauth

import (
	"context"
	"fmt"
)

type subjectCtxKeyType struct{}

var subjectCtxKey subjectCtxKeyType

// AddSubjectToContext adds an authenticated subject to a context, for
// upstream handlers to consume.
func AddSubjectToContext(ctx context.Context, subject any) context.Context {
	return context.WithValue(ctx, subjectCtxKey, subject)
}

// SubjectFromContext retrieves the authenticated subject from a context.
func SubjectFromContext(ctx context.Context) (any, error) {
	subject := ctx.Value(subjectCtxKey)
	if subject == nil {
		return nil, fmt.Errorf("no subject in context")
	}
	return subject, nil
}
