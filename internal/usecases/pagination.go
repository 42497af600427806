package usecases

import (
	"context"

	"timecard.backend/internal/domain/entities"
	"timecard.backend/pkg/utils"
)

type windowFetcher[T any] func(ctx context.Context, offset, limit int) ([]T, error)

// fetchPage loads the inclusive range of the page, then probes the single row
// after it to decide whether another page exists.
func fetchPage[T any](ctx context.Context, page, perPage int, fetch windowFetcher[T]) (*entities.Page[T], error) {
	rng := utils.GetPaginationParams(page, perPage).Range()

	list, err := fetch(ctx, rng.Start, rng.Limit())
	if err != nil {
		return nil, err
	}

	probe := rng.Probe()
	extra, err := fetch(ctx, probe.Start, probe.Limit())
	if err != nil {
		return nil, err
	}

	if list == nil {
		list = []T{}
	}
	return &entities.Page[T]{List: list, HasNextPage: len(extra) > 0}, nil
}
