package commands

import (
	"context"

	"reminder-engine/internal/domain/client"
	"reminder-engine/internal/infra"
	"reminder-engine/internal/pkg/clock"
	"reminder-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

type ClientCommands interface {
	// Unsubscribe is idempotent; an already unsubscribed client is returned unchanged.
	Unsubscribe(ctx context.Context, clientID uuid.UUID) (*client.Client, error)
}

type clientCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewClientCommands(uow shared.UnitOfWork, clk clock.Clock) ClientCommands {
	return &clientCommandsImpl{uow: uow, clock: clk}
}

func (uc *clientCommandsImpl) Unsubscribe(ctx context.Context, clientID uuid.UUID) (*client.Client, error) {
	var out *client.Client
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		c, err := tx.Reads().ClientByID(ctx, clientID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrClientNotFound
			}
			return err
		}
		if c.Unsubscribed {
			out = c
			return nil
		}
		now := uc.clock.Now()
		if _, err := tx.Clients().Unsubscribe(ctx, clientID, now); err != nil {
			return err
		}
		c.Unsubscribe(now)
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
