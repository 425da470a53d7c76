package pixelconv_test

import (
	"math"
	"testing"

	"github.com/kriticalflare/qoi/internal/pixelconv"
)

func TestToHDRAlphaIsLinear(t *testing.T) {
	got := pixelconv.ToHDR([]byte{255, 128}, 2, 2.2, 1.0)
	wantAlpha := float32(128.0 / 255.0)
	if got[1] != wantAlpha {
		t.Fatalf("alpha = %v, want %v", got[1], wantAlpha)
	}
}

func TestToHDRColorUsesGammaAndScale(t *testing.T) {
	got := pixelconv.ToHDR([]byte{128, 255, 255, 255}, 4, 2.2, 2.0)
	want := float32(math.Pow(128.0/255.0, 2.2) * 2.0)
	if got[0] != want {
		t.Fatalf("color[0] = %v, want %v", got[0], want)
	}
	// alpha (index 3) stays linear even with a non-1 scale.
	if got[3] != 1.0 {
		t.Fatalf("alpha = %v, want 1.0", got[3])
	}
}

func TestToHDROddChannelsHasNoAlpha(t *testing.T) {
	got := pixelconv.ToHDR([]byte{255, 255, 255}, 3, 1.0, 1.0)
	for i, v := range got {
		if v != 1.0 {
			t.Fatalf("component %d = %v, want 1.0 (gamma=1 identity)", i, v)
		}
	}
}
