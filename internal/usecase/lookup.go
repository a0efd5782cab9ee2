package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/eslsoft/studytrack/internal/repository"
)

// resolve looks id up through get. A miss and a failed lookup both come back as
// nil; only cancellation of ctx is reported as an error.
func resolve[T repository.Entity](ctx context.Context, logger logrus.FieldLogger, get func(context.Context, uuid.UUID) (*T, error), kind string, id uuid.UUID) (*T, error) {
	item, err := get(ctx, id)
	if err == nil {
		return item, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	logger.WithError(err).WithFields(logrus.Fields{
		"kind": kind,
		"id":   id,
	}).Warn("lookup failed, treating reference as absent")
	return nil, nil
}
