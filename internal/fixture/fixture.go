// Package fixture holds a small fixed club record set used to exercise
// persistence without touching the network.
package fixture

import "github.com/pfrederiksen/clubmap/internal/club"

const site = "https://www.zerozero.pt"

// Records returns a fresh copy of the fixture set on every call
func Records() []*club.Record {
	return []*club.Record{
		{
			ID:          "16",
			Name:        "FC Porto",
			SourceURL:   site + "/team.php?id=16",
			Crest:       site + "/img/logos/equipas/16_imgbank.png",
			Venue:       "Estádio do Dragão",
			Address:     "Porto",
			Coordinates: &club.Coordinates{Latitude: 41.1617, Longitude: -8.5836},
			Kits: []club.Kit{
				{Type: club.KitHome, Image: site + "/img/equipamentos/16_home.png", Alt: "Equipamento principal"},
				{Type: club.KitAway, Image: site + "/img/equipamentos/16_away.png", Alt: "Equipamento alternativo fora"},
			},
		},
		{
			ID:          "4",
			Name:        "Benfica",
			SourceURL:   site + "/team.php?id=4",
			Crest:       site + "/img/logos/equipas/4_imgbank.png",
			Venue:       "Estádio da Luz",
			Address:     "Lisboa",
			Coordinates: &club.Coordinates{Latitude: 38.7527, Longitude: -9.1847},
			Kits: []club.Kit{
				{Type: club.KitHome, Image: site + "/img/equipamentos/4_home.png", Alt: "Equipamento principal"},
			},
		},
		{
			ID:          "9",
			Name:        "Sporting",
			SourceURL:   site + "/equipa/sporting/9",
			Crest:       site + "/img/logos/equipas/9_imgbank.png",
			Venue:       "Estádio José Alvalade",
			Address:     "Lisboa",
			Coordinates: &club.Coordinates{Latitude: 38.7612, Longitude: -9.1607},
		},
		{
			ID:          "8",
			Name:        "Sporting de Braga",
			SourceURL:   site + "/equipa/braga/8",
			Crest:       site + "/img/logos/equipas/8_imgbank.png",
			Venue:       "Estádio Municipal de Braga",
			Address:     "Braga",
			Coordinates: &club.Coordinates{Latitude: 41.5627, Longitude: -8.4298},
		},
		{
			ID:          "7",
			Name:        "Vitória de Guimarães",
			SourceURL:   site + "/equipa/vitoria-guimaraes/7",
			Venue:       "Estádio D. Afonso Henriques",
			Address:     "Guimarães",
			Coordinates: &club.Coordinates{Latitude: 41.4459, Longitude: -8.3009},
		},
		{
			ID:          "2178",
			Name:        "Torreense",
			SourceURL:   site + "/equipa/torreense/2178",
			Venue:       "Estádio Manuel Marques",
			Address:     "Torres Vedras",
			Coordinates: &club.Coordinates{Latitude: 39.0915, Longitude: -9.2588},
		},
		{
			ID:        "3598",
			Name:      "Lourinhanense",
			SourceURL: site + "/equipa/lourinhanense/3598",
			Address:   "Lourinhã",
		},
		{
			ID:        "team_psv",
			Name:      "PSV",
			SourceURL: site + "/equipa/psv?epoca_id=155",
		},
	}
}
