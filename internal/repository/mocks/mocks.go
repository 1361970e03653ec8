package mocks

import (
	"context"
	"io"

	"github.com/ganot/procflow/internal/domain/process"
	"github.com/stretchr/testify/mock"
)

// DocumentStore is a mock for repository.DocumentStore.
type DocumentStore struct {
	mock.Mock
}

func (m *DocumentStore) Load(ctx context.Context) ([]process.Process, error) {
	args := m.Called(ctx)
	if procs, ok := args.Get(0).([]process.Process); ok {
		return procs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DocumentStore) Save(ctx context.Context, processes []process.Process) error {
	args := m.Called(ctx, processes)
	return args.Error(0)
}

// FileStore is a mock for repository.FileStore.
type FileStore struct {
	mock.Mock
}

func (m *FileStore) Save(ctx context.Context, originalName string, r io.Reader) (process.Attachment, error) {
	args := m.Called(ctx, originalName, r)
	return args.Get(0).(process.Attachment), args.Error(1)
}

func (m *FileStore) Remove(ctx context.Context, att process.Attachment) error {
	args := m.Called(ctx, att)
	return args.Error(0)
}
