package tensor_test

import (
	"testing"

	"github.com/born-ml/chaingrad/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicAPI(t *testing.T) {
	x, err := tensor.FromSlice([]float32{1, 2, 3}, tensor.Shape{3})
	require.NoError(t, err)
	assert.Equal(t, tensor.Float32, x.DType())

	ones, err := tensor.OnesLike(x)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 1, 1}, ones.AsFloat32())

	s, err := tensor.AsArray(2)
	require.NoError(t, err)
	assert.True(t, tensor.AllClose(s, tensor.Scalar(2.0), tensor.DefaultRTol, tensor.DefaultATol))

	_, err = tensor.AsArray("two")
	assert.ErrorIs(t, err, tensor.ErrUnsupportedType)
}
