package extract

// Word lists are stored folded (lowercase, no diacritics).

// navigationBlacklist holds site chrome that is never a club or venue name
var navigationBlacklist = map[string]bool{
	"inicio":                true,
	"home":                  true,
	"menu":                  true,
	"login":                 true,
	"entrar":                true,
	"registar":              true,
	"pesquisa":              true,
	"pesquisar":             true,
	"noticias":              true,
	"equipa":                true,
	"equipas":               true,
	"clube":                 true,
	"clubes":                true,
	"competicao":            true,
	"competicoes":           true,
	"jogos":                 true,
	"resultados":            true,
	"classificacao":         true,
	"calendario":            true,
	"jogadores":             true,
	"treinadores":           true,
	"estadio":               true,
	"estadios":              true,
	"videos":                true,
	"fotos":                 true,
	"perfil":                true,
	"plantel":               true,
	"ver mais":              true,
	"mais":                  true,
	"futebol":               true,
	"erro":                  true,
	"404":                   true,
	"pagina nao encontrada": true,
}

// boilerplatePrefixes mark banners and notices picked up by loose selectors
var boilerplatePrefixes = []string{
	"cookie",
	"aceitar",
	"aceito",
	"publicidade",
	"subscrever",
	"newsletter",
	"©",
	"copyright",
	"todos os direitos",
	"javascript",
	"error",
}

var (
	crestCDNPath  = "/img/logos/equipas/"
	crestKeywords = []string{"logo", "emblema", "escudo", "simbolo", "crest", "badge"}

	// equipmentKeywords exclude an image from crest detection
	equipmentKeywords = []string{"equipamento", "camisola", "kit", "jersey", "shirt", "uniform", "patrocin", "sponsor"}

	kitKeywords = []string{"kit", "jersey", "shirt", "uniform", "equipamento", "camisola"}

	homeKitKeywords      = []string{"home", "principal", "casa", "1st"}
	awayKitKeywords      = []string{"away", "fora", "visitante", "2nd", "secundario"}
	alternateKitKeywords = []string{"alternate", "third", "terceiro", "alternativo", "3rd"}

	venueLinkMarkers = []string{"/estadio/", "estadio.php", "/stadium/"}
	venueLabels      = []string{"estadio", "stadium", "recinto", "campo", "venue", "ground"}
	locationLabels   = []string{"morada", "local", "localidade", "cidade", "address", "location", "city"}

	teamNameSelectors = []string{".team-name", ".nome-equipa", ".club-name", "[itemprop='name']"}
)

const (
	// square-ish crest fallback band, in pixels
	crestMinSide  = 24
	crestMaxSide  = 160
	crestMinRatio = 0.8
	crestMaxRatio = 1.25

	venueMinLen = 3
	venueMaxLen = 120
	nameMaxLen  = 100
)
