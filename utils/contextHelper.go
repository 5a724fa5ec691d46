package utils

import (
	"context"

	"github.com/mmdatafocus/workshop_backend/appctx"
)

var (
	ContextKeyOperatorId    = appctx.ContextKeyOperatorId
	ContextKeyOperatorRole  = appctx.ContextKeyOperatorRole
	ContextKeyCorrelationId = appctx.ContextKeyCorrelationId
)

func GetOperatorIdFromContext(ctx context.Context) (int, bool) {
	return appctx.GetInt(ctx, ContextKeyOperatorId)
}

func GetOperatorRoleFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, ContextKeyOperatorRole)
}

func GetCorrelationIdFromContext(ctx context.Context) (string, bool) {
	return appctx.GetString(ctx, ContextKeyCorrelationId)
}

func SetOperatorInContext(ctx context.Context, operatorId int, role string) context.Context {
	ctx = appctx.Set(ctx, ContextKeyOperatorId, operatorId)
	return appctx.Set(ctx, ContextKeyOperatorRole, role)
}

func SetCorrelationIdInContext(ctx context.Context, correlationId string) context.Context {
	return appctx.Set(ctx, ContextKeyCorrelationId, correlationId)
}
