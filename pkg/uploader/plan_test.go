package uploader

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const mib = 1024 * 1024

func TestPartCount(t *testing.T) {
	cases := []struct {
		name     string
		size     int64
		partSize int64
		want     int64
	}{
		{"empty file", 0, 100 * mib, 0},
		{"single byte", 1, 100 * mib, 1},
		{"just below part size", 100*mib - 1, 100 * mib, 1},
		{"exact part size", 100 * mib, 100 * mib, 1},
		{"just above part size", 100*mib + 1, 100 * mib, 2},
		{"250 MB at 100 MB parts", 250 * mib, 100 * mib, 3},
		{"exact multiple", 300 * mib, 100 * mib, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PartCount(tc.size, tc.partSize))
		})
	}
}

func TestPartSizeOf(t *testing.T) {
	cases := []struct {
		name   string
		size   int64
		partNo int64
		want   int64
	}{
		{"first of three", 250 * mib, 1, 100 * mib},
		{"second of three", 250 * mib, 2, 100 * mib},
		{"remainder part", 250 * mib, 3, 50 * mib},
		{"exact multiple keeps full last part", 300 * mib, 3, 100 * mib},
		{"single full part", 100 * mib, 1, 100 * mib},
		{"single short part", 10, 1, 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			partSize := int64(100 * mib)
			parts := PartCount(tc.size, partSize)
			assert.Equal(t, tc.want, PartSizeOf(tc.size, partSize, parts, tc.partNo))
		})
	}
}

func TestPartSizesSumToFileSize(t *testing.T) {
	partSize := int64(7)
	for size := int64(0); size <= 50; size++ {
		parts := PartCount(size, partSize)
		var sum int64
		for p := int64(1); p <= parts; p++ {
			n := PartSizeOf(size, partSize, parts, p)
			if p < parts {
				assert.Equal(t, partSize, n, "size %d part %d", size, p)
			}
			sum += n
		}
		assert.Equal(t, size, sum, "size %d", size)
	}
}
