package docstore

import (
	"context"
	"fmt"

	"github.com/smileworks/dentaldesk/internal/model"
	"github.com/smileworks/dentaldesk/internal/repository"
	"github.com/smileworks/dentaldesk/internal/store"
)

const activationsPath = "activations"

type activationRepository struct {
	store *store.Client
}

func NewActivationRepository(client *store.Client) repository.ActivationRepository {
	return &activationRepository{store: client}
}

func (r *activationRepository) Get(ctx context.Context, deviceID string) (*model.Activation, error) {
	var rec model.Activation
	ok, err := r.store.Get(ctx, activationsPath+"/"+deviceID, &rec)
	if err != nil {
		return nil, fmt.Errorf("failed to load activation for %s: %w", deviceID, err)
	}
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (r *activationRepository) Save(ctx context.Context, rec *model.Activation) error {
	if err := r.store.Set(ctx, activationsPath+"/"+rec.DeviceID, rec); err != nil {
		return fmt.Errorf("failed to save activation for %s: %w", rec.DeviceID, err)
	}
	return nil
}
