package services

// MenuItem is one entry of the server-side menu. Prices live here and only
// here: client-submitted prices are never trusted, checkout resolves every
// line against this table.
type MenuItem struct {
	Id         int    `json:"id"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	PriceCents int64  `json:"price_cents"`
}

// menuItems is the authoritative menu. Ids are stable: order items reference
// them, so entries are only ever added, never renumbered.
var menuItems = []MenuItem{
	// Döner Spezialitäten
	{1, "Döner Kebab", "doener", 800},
	{2, "Döner Teller", "doener", 1200},
	{3, "Döner Box", "doener", 600},
	{4, "Dürüm Döner", "doener", 900},
	{5, "Döner mit Pommes", "doener", 800},
	{6, "Dürüm Teller", "doener", 1100},
	{7, "Döner Teller Groß", "doener", 1400},
	{8, "Saraylı Spezial Teller", "doener", 1800},

	// Teig Spezialitäten
	{9, "Lahmacun", "teig", 400},
	{10, "Lahmacun mit Salat", "teig", 500},
	{11, "Pide mit Käse", "teig", 1000},

	// Imbiss
	{12, "Pommes Klein", "imbiss", 250},
	{13, "Pommes Groß", "imbiss", 400},
	{14, "Chicken Nuggets", "imbiss", 500},
	{15, "Falafel", "imbiss", 300},
	{16, "Halloumi Teller", "imbiss", 700},

	// Suppen
	{17, "Linsensuppe", "suppen", 500},
	{18, "Hühnersuppe", "suppen", 700},

	// Salat
	{19, "Gemischter Salat", "salat", 400},
	{20, "Hirtensalat", "salat", 450},

	// Extras
	{21, "Soße Extra", "extras", 50},
	{22, "Käse", "extras", 200},
	{23, "Sucuk", "extras", 200},
	{24, "Jalapeños", "extras", 200},
	{25, "Zwiebeln", "extras", 100},
	{26, "Extra Fleisch", "extras", 400},

	// Getränke
	{27, "Cola 0,33l", "getraenke", 250},
	{28, "Fanta 0,33l", "getraenke", 250},
	{29, "Sprite 0,33l", "getraenke", 250},
	{30, "Ayran 0,25l", "getraenke", 200},
	{31, "Wasser 0,5l", "getraenke", 200},
	{32, "Eistee 0,33l", "getraenke", 200},
	{33, "Çay", "getraenke", 150},
}

// MenuService exposes the immutable menu lookup table.
type MenuService struct {
	byId map[int]MenuItem
}

func NewMenuService() *MenuService {
	byId := make(map[int]MenuItem, len(menuItems))
	for _, item := range menuItems {
		byId[item.Id] = item
	}
	return &MenuService{byId: byId}
}

// Lookup resolves a menu item id to its canonical name and price.
func (ms *MenuService) Lookup(id int) (MenuItem, bool) {
	item, ok := ms.byId[id]
	return item, ok
}

// Items returns the full menu in definition order.
func (ms *MenuService) Items() []MenuItem {
	return menuItems
}
