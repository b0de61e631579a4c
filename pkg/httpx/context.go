package httpx

import "context"

type ctxKey string

// CtxKeyUserID carries the authenticated principal's id for rate limiting
// and logging. The full principal lives in the http package's own context.
const CtxKeyUserID ctxKey = "user_id"

func userIDFromCtx(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return v
	}
	return ""
}
