// Copyright © 2018 One Concern

package storage

import (
	"context"
	"io"

	"go.uber.org/zap"
)

// Instrument decorates a store with debug logging of every call
func Instrument(logger *zap.Logger, store Store) Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &instrumentedStore{
		store: store,
		l:     logger.With(zap.String("store", store.String())),
	}
}

type instrumentedStore struct {
	store Store
	l     *zap.Logger
}

func (i *instrumentedStore) Has(ctx context.Context, key string) (bool, error) {
	has, err := i.store.Has(ctx, key)
	i.l.Debug("storage has", zap.String("key", key), zap.Bool("has", has), zap.Error(err))
	return has, err
}

func (i *instrumentedStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	rdr, err := i.store.Get(ctx, key)
	i.l.Debug("storage get", zap.String("key", key), zap.Error(err))
	return rdr, err
}

func (i *instrumentedStore) Put(ctx context.Context, key string, source io.Reader, exclusive NewKey) error {
	err := i.store.Put(ctx, key, source, exclusive)
	i.l.Debug("storage put", zap.String("key", key), zap.Bool("exclusive", bool(exclusive)), zap.Error(err))
	return err
}

func (i *instrumentedStore) Keys(ctx context.Context) ([]string, error) {
	keys, err := i.store.Keys(ctx)
	i.l.Debug("storage keys", zap.Int("count", len(keys)), zap.Error(err))
	return keys, err
}

func (i *instrumentedStore) String() string {
	return i.store.String()
}
