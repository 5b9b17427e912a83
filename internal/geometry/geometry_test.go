package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Profile
		wantErr  bool
	}{
		{name: "empty defaults to a4", input: "", expected: A4},
		{name: "a4", input: "a4", expected: A4},
		{name: "letter mixed case", input: " Letter ", expected: Letter},
		{name: "unknown", input: "legal", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Lookup(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnknownProfile)
				assert.Contains(t, err.Error(), "a4, letter")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p)
		})
	}
}

func TestProfilesHeights(t *testing.T) {
	assert.Equal(t, 841.0, A4.PageHeightUnits)
	assert.Equal(t, 1056.0, Letter.PageHeightUnits)
	assert.Equal(t, []string{"a4", "letter"}, Names())
	assert.Len(t, All(), 2)
}

func TestZoomBounds_Clamp(t *testing.T) {
	assert.Equal(t, 0.5, EditorZoom.Clamp(0.1))
	assert.Equal(t, 1.2, EditorZoom.Clamp(1.9))
	assert.Equal(t, 1.9, PreviewZoom.Clamp(1.9))
	assert.Equal(t, 0.7, EditorZoom.Clamp(0.1+0.1+0.5))
	assert.Equal(t, 1.0, EditorZoom.Clamp(1.0))
}

func TestZoomBounds_ClampStaysWithinUnroundedBounds(t *testing.T) {
	b := ZoomBounds{Min: 0.333, Max: 1.257, Step: 0.1}

	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"below min", 0, 0.333},
		{"above max", 5, 1.257},
		{"rounds below min", 0.334, 0.333},
		{"rounds above max", 1.256, 1.257},
		{"inside", 0.756, 0.76},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.Clamp(tt.in)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, b.Min)
			assert.LessOrEqual(t, got, b.Max)
		})
	}
}

func TestZoomBounds_Validate(t *testing.T) {
	require.NoError(t, EditorZoom.Validate())
	require.NoError(t, PreviewZoom.Validate())
	assert.Error(t, ZoomBounds{Min: 0, Max: 1, Step: 0.1}.Validate())
	assert.Error(t, ZoomBounds{Min: 1, Max: 0.5, Step: 0.1}.Validate())
	assert.Error(t, ZoomBounds{Min: 0.5, Max: 1, Step: 0}.Validate())
}

func TestZoomPreset(t *testing.T) {
	b, err := ZoomPreset("")
	require.NoError(t, err)
	assert.Equal(t, EditorZoom, b)

	b, err = ZoomPreset("preview")
	require.NoError(t, err)
	assert.Equal(t, PreviewZoom, b)

	_, err = ZoomPreset("huge")
	assert.Error(t, err)
}
