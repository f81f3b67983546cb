package regions

import (
	"context"
	"errors"
	"fmt"

	"shiloassist/internal/app/ports"
	"shiloassist/internal/domain/world"
)

var ErrInvalidRequest = errors.New("invalid region request")

type UseCase struct {
	Repo      ports.RegionRepository
	TxManager ports.TxManager
}

type PutResponse struct {
	Base   world.RegionBase `json:"base"`
	Planes int              `json:"planes"`
}

func (u UseCase) Put(ctx context.Context, m world.CollisionMap) (PutResponse, error) {
	if err := m.Validate(); err != nil {
		return PutResponse{}, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	save := func(ctx context.Context) error {
		return u.Repo.SaveRegion(ctx, m)
	}
	var err error
	if u.TxManager != nil {
		err = u.TxManager.RunInTx(ctx, save)
	} else {
		err = save(ctx)
	}
	if err != nil {
		return PutResponse{}, err
	}
	return PutResponse{Base: m.Base, Planes: len(m.Planes)}, nil
}

func (u UseCase) Get(ctx context.Context, base world.RegionBase) (world.CollisionMap, error) {
	return u.Repo.GetRegion(ctx, base)
}
