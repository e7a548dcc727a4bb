package derive

import (
	"github.com/samber/lo"
)

// Quality is the rendition requested from a VPX manifest.
type Quality string

const (
	Quality720p  Quality = "720p"
	Quality1080p Quality = "1080p"
	Quality480p  Quality = "480p"

	DefaultQuality = Quality720p
)

// Qualities lists the supported renditions.
func Qualities() []Quality {
	return []Quality{Quality720p, Quality1080p, Quality480p}
}

// Valid reports whether q is a supported rendition.
func (q Quality) Valid() bool {
	return lo.Contains(Qualities(), q)
}

// ParseQuality returns the quality named by s, or DefaultQuality and false.
func ParseQuality(s string) (Quality, bool) {
	q := Quality(s)
	if !q.Valid() {
		return DefaultQuality, false
	}
	return q, true
}

func (q Quality) String() string {
	return string(q)
}
