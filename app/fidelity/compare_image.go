package fidelity

import "strings"

// thumbnailMarkers are URL fragments that identify resized image variants.
var thumbnailMarkers = []string{"thumb", "thumbnails", "/t_"}

// CompareImageURL compares two main-image URLs structurally. Republished
// pages serve images from their own CDNs under different names, so two
// present URLs are never penalized; the verdict only distinguishes
// thumbnail-vs-full variants and carries a caveat that pixel-level
// comparison is out of scope.
func (s *Scorer) CompareImageURL(a, b string) Verdict {
	if v := s.missingVerdict("image", a, b); v != nil {
		return *v
	}

	if isThumbnail(a) != isThumbnail(b) {
		return Verdict{Match: MatchTrue, Score: 1, Message: "image variants (thumbnail vs full)"}
	}

	return Verdict{
		Match:   MatchTrue,
		Score:   1,
		Message: "image comparison limited (different domains use different image files)",
	}
}

func isThumbnail(url string) bool {
	for _, marker := range thumbnailMarkers {
		if strings.Contains(url, marker) {
			return true
		}
	}
	return false
}
