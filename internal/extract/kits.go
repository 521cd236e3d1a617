package extract

import "github.com/pfrederiksen/clubmap/internal/club"

// kits classifies every image as kit or not, types the kit images and
// returns them deduplicated and capped, in discovery order
func kits(p *page) []club.Kit {
	var found []club.Kit
	for _, img := range p.images {
		text := img.text()
		if !containsAny(text, kitKeywords) {
			continue
		}
		found = append(found, club.Kit{
			Type:  kitType(text),
			Image: img.src,
			Alt:   img.alt,
		})
	}
	return club.DedupeKits(found)
}

func kitType(text string) club.KitType {
	toks := tokens(text)
	switch {
	case hasTokenPrefix(toks, homeKitKeywords):
		return club.KitHome
	case hasTokenPrefix(toks, awayKitKeywords):
		return club.KitAway
	case hasTokenPrefix(toks, alternateKitKeywords):
		return club.KitAlternate
	default:
		return club.KitUnknown
	}
}
