package types_test

import (
	"testing"
	"time"

	"github.com/pobredward/inschoolz-moderation/internal/database/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInstant(t *testing.T) {
	t.Parallel()

	ref := time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC) // epoch 1700000000

	tests := []struct {
		name  string
		value any
		want  time.Time
	}{
		{
			name:  "native time",
			value: ref.In(time.FixedZone("KST", 9*60*60)),
			want:  ref,
		},
		{
			name:  "instant",
			value: types.NewInstant(ref),
			want:  ref,
		},
		{
			name:  "epoch seconds int",
			value: 1700000000,
			want:  ref,
		},
		{
			name:  "epoch seconds int64",
			value: int64(1700000000),
			want:  ref,
		},
		{
			name:  "epoch milliseconds",
			value: int64(1700000000000),
			want:  ref,
		},
		{
			name:  "epoch seconds float",
			value: float64(1700000000),
			want:  ref,
		},
		{
			name:  "rfc3339 string",
			value: "2023-11-14T22:13:20Z",
			want:  ref,
		},
		{
			name:  "date string",
			value: "2023-11-14 22:13:20",
			want:  ref,
		},
		{
			name:  "numeric string seconds",
			value: "1700000000",
			want:  ref,
		},
		{
			name:  "numeric string milliseconds",
			value: "1700000000000",
			want:  ref,
		},
		{
			name:  "seconds object",
			value: map[string]any{"seconds": float64(1700000000)},
			want:  ref,
		},
		{
			name:  "underscore seconds object",
			value: map[string]any{"_seconds": float64(1700000000), "_nanoseconds": float64(0)},
			want:  ref,
		},
		{
			name:  "json object string",
			value: `{"seconds": 1700000000}`,
			want:  ref,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := types.ParseInstant(tt.value)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s, want %s", got, tt.want)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func TestParseInstantInvalid(t *testing.T) {
	t.Parallel()

	values := []any{
		nil,
		"",
		"null",
		"not a timestamp",
		`{"minutes": 5}`,
		struct{}{},
		(*time.Time)(nil),
	}

	for _, value := range values {
		_, err := types.ParseInstant(value)
		require.ErrorIs(t, err, types.ErrInvalidInstant, "value %#v", value)
	}
}

func TestInstantUnmarshalJSON(t *testing.T) {
	t.Parallel()

	ref := time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC)

	t.Run("quoted string", func(t *testing.T) {
		t.Parallel()

		var i types.Instant
		require.NoError(t, i.UnmarshalJSON([]byte(`"2023-11-14T22:13:20Z"`)))
		assert.True(t, ref.Equal(i.Time))
	})

	t.Run("raw number", func(t *testing.T) {
		t.Parallel()

		var i types.Instant
		require.NoError(t, i.UnmarshalJSON([]byte(`1700000000`)))
		assert.True(t, ref.Equal(i.Time))
	})

	t.Run("object", func(t *testing.T) {
		t.Parallel()

		var i types.Instant
		require.NoError(t, i.UnmarshalJSON([]byte(`{"_seconds": 1700000000, "_nanoseconds": 0}`)))
		assert.True(t, ref.Equal(i.Time))
	})

	t.Run("null leaves zero value", func(t *testing.T) {
		t.Parallel()

		var i types.Instant
		require.NoError(t, i.UnmarshalJSON([]byte(`null`)))
		assert.True(t, i.IsZero())
	})

	t.Run("garbage", func(t *testing.T) {
		t.Parallel()

		var i types.Instant
		require.ErrorIs(t, i.UnmarshalJSON([]byte(`"tomorrow-ish"`)), types.ErrInvalidInstant)
	})
}

func TestInstantMarshalJSON(t *testing.T) {
	t.Parallel()

	i := types.NewInstant(time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC))

	data, err := i.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"2023-11-14T22:13:20Z"`, string(data))
}

func TestInstantScan(t *testing.T) {
	t.Parallel()

	ref := time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC)

	t.Run("time value", func(t *testing.T) {
		t.Parallel()

		var i types.Instant
		require.NoError(t, i.Scan(ref))
		assert.True(t, ref.Equal(i.Time))
	})

	t.Run("jsonb bytes", func(t *testing.T) {
		t.Parallel()

		var i types.Instant
		require.NoError(t, i.Scan([]byte(`"2023-11-14T22:13:20Z"`)))
		assert.True(t, ref.Equal(i.Time))
	})

	t.Run("legacy object bytes", func(t *testing.T) {
		t.Parallel()

		var i types.Instant
		require.NoError(t, i.Scan([]byte(`{"seconds": 1700000000}`)))
		assert.True(t, ref.Equal(i.Time))
	})

	t.Run("nil resets", func(t *testing.T) {
		t.Parallel()

		i := types.NewInstant(ref)
		require.NoError(t, i.Scan(nil))
		assert.True(t, i.IsZero())
	})
}
