package mirrorkit_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fcolombo/mirrorkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		config  mirrorkit.Config
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			config: mirrorkit.DefaultConfig(),
		},
		{
			name:    "zero block size",
			config:  mirrorkit.Config{MinBlockSize: 0, SimilarityThreshold: 0.9, MinOccurrences: 2},
			wantErr: true,
		},
		{
			name:    "threshold above one",
			config:  mirrorkit.Config{MinBlockSize: 50, SimilarityThreshold: 1.1, MinOccurrences: 2},
			wantErr: true,
		},
		{
			name:    "threshold below zero",
			config:  mirrorkit.Config{MinBlockSize: 50, SimilarityThreshold: -0.1, MinOccurrences: 2},
			wantErr: true,
		},
		{
			name:   "threshold of exactly one",
			config: mirrorkit.Config{MinBlockSize: 50, SimilarityThreshold: 1.0, MinOccurrences: 2},
		},
		{
			name:    "single occurrence",
			config:  mirrorkit.Config{MinBlockSize: 50, SimilarityThreshold: 0.9, MinOccurrences: 1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.config.Validate()

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, mirrorkit.EINVALID, mirrorkit.ErrorCode(err))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestBlock_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid block", func(t *testing.T) {
		t.Parallel()

		b := &mirrorkit.Block{
			Type:    mirrorkit.BlockNavigation,
			Content: "<nav>...</nav>",
			Hash:    "deadbeef",
		}
		require.NoError(t, b.Validate())
	})

	t.Run("missing fingerprint", func(t *testing.T) {
		t.Parallel()

		b := &mirrorkit.Block{Type: mirrorkit.BlockScript, Content: "<script></script>"}
		err := b.Validate()
		require.Error(t, err)
		assert.Equal(t, mirrorkit.EINVALID, mirrorkit.ErrorCode(err))
	})
}

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("application error", func(t *testing.T) {
		t.Parallel()
		err := mirrorkit.Errorf(mirrorkit.ENOTFOUND, "run not found")
		assert.Equal(t, mirrorkit.ENOTFOUND, mirrorkit.ErrorCode(err))
		assert.Equal(t, "run not found", mirrorkit.ErrorMessage(err))
	})

	t.Run("wrapped application error", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("outer: %w", mirrorkit.Errorf(mirrorkit.EINVALID, "bad input"))
		assert.Equal(t, mirrorkit.EINVALID, mirrorkit.ErrorCode(err))
	})

	t.Run("non-application error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, mirrorkit.EINTERNAL, mirrorkit.ErrorCode(errors.New("boom")))
	})

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", mirrorkit.ErrorCode(nil))
	})
}
