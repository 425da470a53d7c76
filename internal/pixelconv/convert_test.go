package pixelconv_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kriticalflare/qoi/internal/pixelconv"
)

func TestConvertMatrix(t *testing.T) {
	cases := []struct {
		name       string
		from, to   int
		src, want  []byte
	}{
		{"1to2", 1, 2, []byte{42}, []byte{42, 255}},
		{"1to3", 1, 3, []byte{42}, []byte{42, 42, 42}},
		{"1to4", 1, 4, []byte{42}, []byte{42, 42, 42, 255}},
		{"2to1", 2, 1, []byte{42, 10}, []byte{42}},
		{"2to3", 2, 3, []byte{42, 10}, []byte{42, 42, 42}},
		{"2to4", 2, 4, []byte{42, 10}, []byte{42, 42, 42, 10}},
		{"3to1", 3, 1, []byte{100, 150, 200}, []byte{byte((77*100 + 150*150 + 29*200) >> 8)}},
		{"3to2", 3, 2, []byte{100, 150, 200}, []byte{byte((77*100 + 150*150 + 29*200) >> 8), 255}},
		{"3to4", 3, 4, []byte{100, 150, 200}, []byte{100, 150, 200, 255}},
		{"4to1", 4, 1, []byte{100, 150, 200, 80}, []byte{byte((77*100 + 150*150 + 29*200) >> 8)}},
		{"4to2", 4, 2, []byte{100, 150, 200, 80}, []byte{byte((77*100 + 150*150 + 29*200) >> 8), 80}},
		{"4to3", 4, 3, []byte{100, 150, 200, 80}, []byte{100, 150, 200}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := pixelconv.Convert(tc.src, 1, tc.from, tc.to)
			if err != nil {
				t.Fatalf("Convert: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConvertSameChannelsIsCopy(t *testing.T) {
	src := []byte{1, 2, 3, 4}
	got, err := pixelconv.Convert(src, 1, 4, 4)
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if &got[0] == &src[0] {
		t.Fatalf("Convert must not alias the source buffer")
	}
	if diff := cmp.Diff(src, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertRejectsOutOfRangeChannels(t *testing.T) {
	if _, err := pixelconv.Convert([]byte{1}, 1, 0, 3); err == nil {
		t.Fatalf("expected error for from=0")
	}
	if _, err := pixelconv.Convert([]byte{1}, 1, 3, 5); err == nil {
		t.Fatalf("expected error for to=5")
	}
}
