package showcase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fitglue/bodyhighlighter/pkg/domain/anatomy"
	"github.com/fitglue/bodyhighlighter/pkg/highlighter"
	"github.com/fitglue/bodyhighlighter/pkg/testing/mocks"
)

func TestExport_WritesSVGAndReturnsGCSURL(t *testing.T) {
	store := &mocks.MockBlobStore{}
	e := &Exporter{Store: store, Bucket: "assets"}
	h := highlighter.New(highlighter.WithModel(anatomy.Posterior))

	asset, err := e.Export(context.Background(), h, "abc")
	require.NoError(t, err)

	assert.Equal(t, "abc/posterior.svg", asset.Object)
	assert.Equal(t, "https://storage.googleapis.com/assets/abc/posterior.svg", asset.URL)

	data, ok := store.Objects["assets/abc/posterior.svg"]
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(string(data), "<?xml"))
	assert.Contains(t, string(data), `data-muscle="hamstring"`)
}

func TestExport_UsesBaseURL(t *testing.T) {
	e := &Exporter{Store: &mocks.MockBlobStore{}, Bucket: "assets", BaseURL: "https://cdn.example.com/"}

	asset, err := e.Export(context.Background(), highlighter.New(), "f")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/f/anterior.svg", asset.URL)
}

func TestExport_GeneratesFolder(t *testing.T) {
	e := &Exporter{Store: &mocks.MockBlobStore{}, Bucket: "assets"}

	asset, err := e.Export(context.Background(), highlighter.New(), "")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(asset.Object, "/anterior.svg"))
	assert.Greater(t, len(asset.Object), len("/anterior.svg"))
}

func TestExport_Errors(t *testing.T) {
	_, err := (&Exporter{}).Export(context.Background(), highlighter.New(), "f")
	assert.ErrorIs(t, err, ErrNoStore)

	boom := errors.New("boom")
	calls := 0
	e := &Exporter{Store: &mocks.MockBlobStore{
		WriteFunc: func(ctx context.Context, bucket, object string, data []byte) error {
			calls++
			return boom
		},
	}, Attempts: 2, RetryDelay: time.Millisecond}
	_, err = e.Export(context.Background(), highlighter.New(), "f")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}

func TestExport_RetriesTransientFailure(t *testing.T) {
	calls := 0
	store := &mocks.MockBlobStore{
		WriteFunc: func(ctx context.Context, bucket, object string, data []byte) error {
			calls++
			if calls == 1 {
				return errors.New("503 backend error")
			}
			return nil
		},
	}
	e := &Exporter{Store: store, Bucket: "b", RetryDelay: time.Millisecond}

	_, err := e.Export(context.Background(), highlighter.New(), "f")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Contains(t, store.Objects, "b/f/anterior.svg")
}

func TestExportAll_SharesFolder(t *testing.T) {
	store := &mocks.MockBlobStore{}
	e := &Exporter{Store: store, Bucket: "b"}

	assets, err := e.ExportAll(context.Background(), "",
		highlighter.New(highlighter.WithModel(anatomy.Anterior)),
		highlighter.New(highlighter.WithModel(anatomy.Posterior)),
	)
	require.NoError(t, err)
	require.Len(t, assets, 2)

	folder := strings.TrimSuffix(assets[0].Object, "/anterior.svg")
	assert.Equal(t, folder+"/posterior.svg", assets[1].Object)
	assert.Len(t, store.Objects, 2)
}
