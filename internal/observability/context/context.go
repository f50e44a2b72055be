package context

import "context"

type requestIDKey struct{}
type workspaceIDKey struct{}
type actorKey struct{}

type actor struct {
	actorType string
	actorID   string
}

// WithRequestID stores the correlation request ID in the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestIDFromContext returns the correlation request ID, if present.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(requestIDKey{}).(string)
	return value
}

// WithWorkspaceID stores the active workspace ID for log correlation.
func WithWorkspaceID(ctx context.Context, workspaceID string) context.Context {
	return context.WithValue(ctx, workspaceIDKey{}, workspaceID)
}

// WorkspaceIDFromContext returns the active workspace ID, if present.
func WorkspaceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(workspaceIDKey{}).(string)
	return value
}

// WithActor stores the acting principal for log correlation.
func WithActor(ctx context.Context, actorType, actorID string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor{actorType: actorType, actorID: actorID})
}

// ActorFromContext returns the acting principal, if present.
func ActorFromContext(ctx context.Context) (string, string) {
	if ctx == nil {
		return "", ""
	}
	value, _ := ctx.Value(actorKey{}).(actor)
	return value.actorType, value.actorID
}
