package columnar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_RoundTripPerDType(t *testing.T) {
	for _, compression := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		t.Run(compression.String(), func(t *testing.T) {
			s := NewStore(WithCompression(compression))

			require.NoError(t, s.PutInt64s("i64", []int64{-1, 0, 1, 1 << 40}))
			require.NoError(t, s.PutInt32s("i32", []int32{-7, 7}))
			require.NoError(t, s.PutFloat64s("f64", []float64{0.5, -2.25}))
			require.NoError(t, s.PutFloat32s("f32", []float32{1.5}))
			require.NoError(t, s.PutBools("b", []bool{true, false, true}))

			i64, err := s.Int64s("i64")
			require.NoError(t, err)
			v64, err := i64.Materialize()
			require.NoError(t, err)
			assert.Equal(t, []int64{-1, 0, 1, 1 << 40}, v64)

			i32, err := s.Int32s("i32")
			require.NoError(t, err)
			v32, err := i32.Materialize()
			require.NoError(t, err)
			assert.Equal(t, []int32{-7, 7}, v32)

			f64, err := s.Float64s("f64")
			require.NoError(t, err)
			vf64, err := f64.Materialize()
			require.NoError(t, err)
			assert.Equal(t, []float64{0.5, -2.25}, vf64)

			f32, err := s.Float32s("f32")
			require.NoError(t, err)
			vf32, err := f32.Materialize()
			require.NoError(t, err)
			assert.Equal(t, []float32{1.5}, vf32)

			b, err := s.Bools("b")
			require.NoError(t, err)
			vb, err := b.Materialize()
			require.NoError(t, err)
			assert.Equal(t, []bool{true, false, true}, vb)
		})
	}
}

func TestStore_ReadIsDeferred(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.PutInt64s("pt", []int64{1, 2, 3}))

	cell, err := s.Int64s("pt")
	require.NoError(t, err)

	// Obtaining the cell declares the shape but decodes nothing.
	n, ok := cell.DeclaredLength()
	assert.True(t, ok)
	assert.Equal(t, int64(3), n)
	assert.False(t, cell.IsMaterialized())
	assert.Empty(t, s.Accessed())

	_, err = cell.Materialize()
	require.NoError(t, err)
	assert.Equal(t, []string{"pt"}, s.Accessed())
}

func TestStore_AccessLog(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.PutInt64s("a", []int64{1}))
	require.NoError(t, s.PutInt64s("b", []int64{2}))
	require.NoError(t, s.PutInt64s("c", []int64{3}))

	for _, name := range []string{"c", "a"} {
		cell, err := s.Int64s(name)
		require.NoError(t, err)
		require.NoError(t, cell.Force())
	}

	// Insertion order, not access order.
	assert.Equal(t, []string{"a", "c"}, s.Accessed())
	assert.True(t, s.Touched("a"))
	assert.False(t, s.Touched("b"))
	assert.False(t, s.Touched("missing"))

	s.ResetAccessLog()
	assert.Empty(t, s.Accessed())
	assert.False(t, s.Touched("a"))
}

func TestStore_DuplicateColumn(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.PutInt64s("pt", []int64{1}))

	err := s.PutFloat64s("pt", []float64{1})

	var existsErr *ErrColumnExists
	require.ErrorAs(t, err, &existsErr)
	assert.Equal(t, "pt", existsErr.Name)
}

func TestStore_TypeMismatch(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.PutInt64s("pt", []int64{1}))

	_, err := s.Float64s("pt")

	var mismatchErr *ErrTypeMismatch
	require.ErrorAs(t, err, &mismatchErr)
	assert.Equal(t, DTypeFloat64, mismatchErr.Expected)
	assert.Equal(t, DTypeInt64, mismatchErr.Actual)
}

func TestStore_ColumnNotFound(t *testing.T) {
	s := NewStore()

	_, err := s.Int64s("missing")

	var notFoundErr *ErrColumnNotFound
	assert.ErrorAs(t, err, &notFoundErr)

	_, err = s.DTypeOf("missing")
	assert.ErrorAs(t, err, &notFoundErr)

	_, err = s.Rows("missing")
	assert.ErrorAs(t, err, &notFoundErr)
}

func TestStore_Metadata(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.PutInt64s("pt", []int64{1, 2}))
	require.NoError(t, s.PutBools("good", []bool{true}))

	assert.Equal(t, []string{"pt", "good"}, s.Columns())

	dtype, err := s.DTypeOf("good")
	require.NoError(t, err)
	assert.Equal(t, DTypeBool, dtype)

	rows, err := s.Rows("pt")
	require.NoError(t, err)
	assert.Equal(t, int64(2), rows)
}

func TestStore_IndependentCellsDecodeIndependently(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.PutInt64s("pt", []int64{1, 2, 3}))

	first, err := s.Int64s("pt")
	require.NoError(t, err)
	second, err := s.Int64s("pt")
	require.NoError(t, err)

	v1, err := first.Materialize()
	require.NoError(t, err)
	v2, err := second.Materialize()
	require.NoError(t, err)

	assert.Equal(t, v1, v2)

	// Mutating one decoded buffer must not leak into the other.
	v1[0] = 99
	assert.Equal(t, int64(1), v2[0])
}
