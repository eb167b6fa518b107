package pathwalk

import (
	"path"
	"testing"
)

func BenchmarkNormalize(b *testing.B) {
	const in = "/var/./logs/.//test/..//..//////srv/data/../cache/./index"

	b.Run("Buffer", func(b *testing.B) {
		var buf [128]byte
		b.ReportAllocs()
		for b.Loop() {
			_ = Normalize(StyleUnix, buf[:], in)
		}
	})

	b.Run("String", func(b *testing.B) {
		b.ReportAllocs()
		for b.Loop() {
			_ = StyleUnix.Normalize(in)
		}
	})

	b.Run("PathClean", func(b *testing.B) {
		b.ReportAllocs()
		for b.Loop() {
			_ = path.Clean(in)
		}
	})
}

func BenchmarkJoin(b *testing.B) {
	var buf [128]byte
	b.ReportAllocs()
	for b.Loop() {
		_ = Join(StyleWindows, buf[:], "C:\\Users\\me\\projects", "..\\..\\shared\\.\\lib")
	}
}

func BenchmarkRelative(b *testing.B) {
	var buf [128]byte
	b.ReportAllocs()
	for b.Loop() {
		_ = Relative(StyleUnix, buf[:], "/srv/www/site/assets/css", "/srv/www/site/assets/img/logo.png")
	}
}

func BenchmarkIntersection(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		_ = Intersection(StyleWindows, "C:\\Program Files\\App\\bin", "c:/program files/app/lib")
	}
}
