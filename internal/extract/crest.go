package extract

import "strings"

// crestFromCDN accepts the first image served from the catalogue's crest path
func crestFromCDN(p *page) (string, bool) {
	for _, img := range p.images {
		if strings.Contains(strings.ToLower(img.src), crestCDNPath) {
			return img.src, true
		}
	}
	return "", false
}

// crestFromKeywords accepts the first image described as a logo or emblem
// that is not equipment imagery
func crestFromKeywords(p *page) (string, bool) {
	for _, img := range p.images {
		text := img.text()
		if containsAny(text, crestKeywords) && !containsAny(text, equipmentKeywords) {
			return img.src, true
		}
	}
	return "", false
}

// crestFromShape accepts the first small, roughly square image that is not
// equipment imagery
func crestFromShape(p *page) (string, bool) {
	for _, img := range p.images {
		if !squareish(img.width, img.height) {
			continue
		}
		if containsAny(img.text(), equipmentKeywords) {
			continue
		}
		return img.src, true
	}
	return "", false
}

func squareish(w, h int) bool {
	if w < crestMinSide || w > crestMaxSide || h < crestMinSide || h > crestMaxSide {
		return false
	}
	ratio := float64(w) / float64(h)
	return ratio >= crestMinRatio && ratio <= crestMaxRatio
}
