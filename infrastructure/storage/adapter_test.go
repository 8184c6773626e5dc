package storage_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/mwumpini/WIP-HMS-sub001/infrastructure/storage"
	"github.com/mwumpini/WIP-HMS-sub001/infrastructure/storage/mocks"
)

func TestAdapterGet(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(backend *mocks.MockBackend)
		wantFound bool
		wantValue string
	}{
		{
			name: "value present",
			setup: func(backend *mocks.MockBackend) {
				backend.EXPECT().Get("greeting").Return([]byte(`"hello"`), nil)
			},
			wantFound: true,
			wantValue: "hello",
		},
		{
			name: "missing key keeps default",
			setup: func(backend *mocks.MockBackend) {
				backend.EXPECT().Get("greeting").Return(nil, storage.ErrKeyNotFound)
			},
			wantFound: false,
		},
		{
			name: "corrupt value keeps default and is not deleted",
			setup: func(backend *mocks.MockBackend) {
				backend.EXPECT().Get("greeting").Return([]byte(`{not json`), nil)
				// No Delete expectation: the corrupt value must stay in place.
			},
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			backend := mocks.NewMockBackend(ctrl)
			tt.setup(backend)

			adapter := storage.NewAdapter(backend)

			var out string
			found := adapter.Get("greeting", &out)

			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.wantValue, out)
		})
	}
}

func TestAdapterSetRecoversByPruningDisposableKeys(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	backend := mocks.NewMockBackend(ctrl)

	payload := []byte(`"important"`)
	gomock.InOrder(
		backend.EXPECT().Put("sales", payload).Return(storage.ErrQuotaExceeded),
		backend.EXPECT().Keys().Return([]string{"sales", "backup:2024-01-01T00:00:00Z", "user"}, nil),
		backend.EXPECT().Delete("backup:2024-01-01T00:00:00Z").Return(nil),
		backend.EXPECT().Put("sales", payload).Return(nil),
	)

	adapter := storage.NewAdapter(backend)
	assert.True(t, adapter.Set("sales", "important"))
}

func TestAdapterSetFailsAfterRecoveryAttempt(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	backend := mocks.NewMockBackend(ctrl)

	payload := []byte(`"important"`)
	gomock.InOrder(
		backend.EXPECT().Put("sales", payload).Return(storage.ErrQuotaExceeded),
		backend.EXPECT().Keys().Return([]string{"sales"}, nil),
		backend.EXPECT().Put("sales", payload).Return(storage.ErrQuotaExceeded),
	)

	adapter := storage.NewAdapter(backend)
	assert.False(t, adapter.Set("sales", "important"))
}

func TestAdapterSetUnserializableValue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	backend := mocks.NewMockBackend(ctrl)
	adapter := storage.NewAdapter(backend)

	// No backend call expected: serialization fails first.
	assert.False(t, adapter.Set("sales", func() {}))
}

func TestMemoryBackendQuota(t *testing.T) {
	backend := storage.NewMemoryBackendWithQuota(64)
	adapter := storage.NewAdapter(backend)

	// A disposable artifact fills most of the quota.
	assert.True(t, adapter.Set(storage.DisposablePrefix+"old", "0123456789012345678901234567890123456789"))

	// The next write does not fit until the artifact is pruned.
	assert.True(t, adapter.Set("sales", "0123456789012345678901234567890123456789"))

	var out string
	assert.True(t, adapter.Get("sales", &out))
	assert.False(t, adapter.Get(storage.DisposablePrefix+"old", &out))
}
