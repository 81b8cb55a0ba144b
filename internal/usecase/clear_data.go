package usecase

import (
	"context"

	"github.com/xavierca1/financekeem/internal/log"
)

type ClearDataUseCase struct {
	Store DataClearer
	Cache SlugCache
}

func NewClearDataUseCase(store DataClearer, cache SlugCache) *ClearDataUseCase {
	return &ClearDataUseCase{Store: store, Cache: cache}
}

// Execute deletes every record in every collection.
func (uc *ClearDataUseCase) Execute(ctx context.Context) error {
	if err := uc.Store.Clear(ctx); err != nil {
		return err
	}

	if uc.Cache != nil {
		if err := uc.Cache.Purge(ctx); err != nil {
			log.WithError(err).Warn("slug cache purge failed")
		}
	}

	log.Info("all data cleared")
	return nil
}
