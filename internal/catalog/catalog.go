// Package catalog holds the fixed reference data shipped with the app:
// waste categories, the badge ladder, the seed ideas and posts, and the
// image tables used to backfill documents written before images existed.
package catalog

import "github.com/existflow/upcycle/internal/model"

const (
	imgHangingPot   = "https://images.unsplash.com/photo-1485955900006-10f4d324d411?w=800&q=80"
	imgCoinPurse    = "https://images.unsplash.com/photo-1591561954557-26941169b49e?w=800&q=80"
	imgJarLamp      = "https://images.unsplash.com/photo-1513506003901-1e6a229e2d15?w=800&q=80"
	imgDeskOrganize = "https://images.unsplash.com/photo-1484480974693-6ca0a78fb36b?w=800&q=80"
	imgSachetWallet = "https://images.unsplash.com/photo-1624823183493-ed5832f48f18?w=800&q=80"
	imgStickLamp    = "https://images.unsplash.com/photo-1507473885765-e6ed057f782c?w=800&q=80"
	imgBoxShelf     = "https://images.unsplash.com/photo-1594620302200-9a762244a156?w=800&q=80"
	imgClothBag     = "https://images.unsplash.com/photo-1544816155-12df9643f363?w=800&q=80"
	imgCanPot       = "https://images.unsplash.com/photo-1466692476868-aef1dfb1e735?w=800&q=80"
)

// Category colours
const (
	ColorPlastic model.Color = 0xFF2196F3
	ColorPaper   model.Color = 0xFFFFC107
	ColorGlass   model.Color = 0xFF00BCD4
	ColorMetal   model.Color = 0xFF607D8B
	ColorTextile model.Color = 0xFF9C27B0
	ColorWood    model.Color = 0xFFFF9800
	ColorGreen   model.Color = 0xFF4CAF50
)

// Categories returns the waste categories
func Categories() []model.Category {
	return []model.Category{
		{
			ID: "Plastik", Name: "Plastik", Description: "Botol, kemasan, plastik.", Icon: "local_drink", Color: ColorPlastic,
			Types: []model.WasteType{{Code: "PET", Name: "Polyethylene", Examples: "Botol mineral", Recyclability: "Tinggi"}},
			Tips:  []string{"Remas botol"},
		},
		{
			ID: "Kertas", Name: "Kertas", Description: "Koran, kardus, majalah.", Icon: "feed", Color: ColorPaper,
			Types: []model.WasteType{{Code: "Karton", Name: "Cardboard", Examples: "Kardus paket", Recyclability: "Tinggi"}},
			Tips:  []string{"Pipihkan kardus"},
		},
		{
			ID: "Kaca", Name: "Kaca", Description: "Botol selai, toples.", Icon: "local_bar", Color: ColorGlass,
			Types: []model.WasteType{{Code: "Bening", Name: "Glass", Examples: "Toples selai", Recyclability: "Tinggi"}},
			Tips:  []string{"Cuci bersih"},
		},
		{
			ID: "Logam", Name: "Logam", Description: "Kaleng, besi, alu.", Icon: "precision_manufacturing", Color: ColorMetal,
			Types: []model.WasteType{{Code: "Alu", Name: "Aluminium", Examples: "Kaleng soda", Recyclability: "Tinggi"}},
			Tips:  []string{"Cuci bersih"},
		},
		{
			ID: "Tekstil", Name: "Tekstil", Description: "Pakaian bekas, kain perca.", Icon: "checkroom", Color: ColorTextile,
			Types: []model.WasteType{{Code: "Katun", Name: "Kaos", Examples: "Kaos bekas", Recyclability: "Tinggi"}},
			Tips:  []string{"Cuci bersih"},
		},
	}
}

// FindCategory looks up a category by name, falling back to the first one
func FindCategory(name string) model.Category {
	all := Categories()
	for _, c := range all {
		if c.Name == name {
			return c
		}
	}
	return all[0]
}

// Badges returns the badge ladder in catalog order, all unclaimed.
// Thresholds are strictly increasing.
func Badges() []model.Badge {
	return []model.Badge{
		{ID: "b1", Name: "Pemula", RequiredPoints: 100, Icon: "star"},
		{ID: "b2", Name: "Rajin", RequiredPoints: 300, Icon: "recycling"},
		{ID: "b3", Name: "Kreatif", RequiredPoints: 600, Icon: "emoji_events"},
		{ID: "b4", Name: "Master", RequiredPoints: 1000, Icon: "eco"},
		{ID: "b5", Name: "Influencer", RequiredPoints: 2000, Icon: "person"},
		{ID: "b6", Name: "Guru", RequiredPoints: 5000, Icon: "lightbulb"},
	}
}

// SeedIdeas returns the ideas written into an empty ideas collection
func SeedIdeas() []model.Idea {
	return []model.Idea{
		{
			ID: 1, Title: "Pot Bunga Botol Gantung", Difficulty: model.DifficultyEasy, TimeRequired: "30 Menit",
			Description: "Ubah botol plastik bekas menjadi pot gantung cantik.",
			Tools:       []string{"Gunting"}, Materials: []string{"Botol 1.5L"}, Steps: []string{"Bersihkan", "Potong", "Tanam"},
			Category: "Plastik", Color: ColorPlastic, ImageURL: imgHangingPot,
		},
		{
			ID: 2, Title: "Dompet Koin Kemasan", Difficulty: model.DifficultyMedium, TimeRequired: "1 Jam",
			Description: "Jahit kemasan sachet menjadi dompet.",
			Tools:       []string{"Jarum"}, Materials: []string{"Sachet"}, Steps: []string{"Cuci", "Jahit"},
			Category: "Plastik", Color: ColorPlastic, ImageURL: imgCoinPurse,
		},
		{
			ID: 3, Title: "Lampu Hias Toples", Difficulty: model.DifficultyEasy, TimeRequired: "45 Menit",
			Description: "Ciptakan suasana hangat dengan toples.",
			Tools:       []string{"Lem"}, Materials: []string{"Toples"}, Steps: []string{"Bersihkan", "Isi Lampu"},
			Category: "Kaca", Color: ColorGlass, ImageURL: imgJarLamp,
		},
		{
			ID: 4, Title: "Organizer Meja", Difficulty: model.DifficultyMedium, TimeRequired: "1.5 Jam",
			Description: "Rapikan meja dengan kardus.",
			Tools:       []string{"Cutter"}, Materials: []string{"Kardus"}, Steps: []string{"Ukur", "Rakit"},
			Category: "Kertas", Color: ColorPaper, ImageURL: imgDeskOrganize,
		},
	}
}

// SeedPosts returns the posts written into an empty posts collection
func SeedPosts() []model.CommunityPost {
	return []model.CommunityPost{
		{ID: 1, Title: "Dompet Sachet Kopi", CreatorName: "Santi_Recycle", Category: "Plastik", Impact: "5 Sachet", Likes: 120, Color: ColorPlastic, ImageURL: imgSachetWallet},
		{ID: 2, Title: "Lampu Tidur Stik Es", CreatorName: "Budi_Craft", Category: "Kayu", Impact: "50 Stik Es", Likes: 85, Color: ColorWood, ImageURL: imgStickLamp},
		{ID: 3, Title: "Rak Buku Kardus", CreatorName: "Rina_Lestari", Category: "Kertas", Impact: "2kg Kardus", Likes: 200, Color: ColorPaper, ImageURL: imgBoxShelf},
		{ID: 4, Title: "Vas Bunga Botol", CreatorName: "Eco_Warrior", Category: "Plastik", Impact: "1 Botol", Likes: 45, Color: ColorGreen, ImageURL: imgHangingPot},
		{ID: 5, Title: "Tas Belanja Kain", CreatorName: "Mama_Jahit", Category: "Tekstil", Impact: "1 Baju Bekas", Likes: 150, Color: ColorTextile, ImageURL: imgClothBag},
		{ID: 6, Title: "Pot Gantung Kaleng", CreatorName: "Green_Thumb", Category: "Logam", Impact: "2 Kaleng", Likes: 90, Color: ColorMetal, ImageURL: imgCanPot},
	}
}

// IdeaImages maps seed idea ids to their image
func IdeaImages() map[int64]string {
	return map[int64]string{
		1: imgHangingPot,
		2: imgCoinPurse,
		3: imgJarLamp,
		4: imgDeskOrganize,
	}
}

// PostImages maps seed post ids to their image
func PostImages() map[int64]string {
	return map[int64]string{
		1: imgSachetWallet,
		2: imgStickLamp,
		3: imgBoxShelf,
		4: imgHangingPot,
		5: imgClothBag,
		6: imgCanPot,
	}
}

// ProjectImages maps the titles of seed ideas and posts to their image,
// for projects adopted before images were copied over.
func ProjectImages() map[string]string {
	return map[string]string{
		"Pot Bunga Botol Gantung": imgHangingPot,
		"Dompet Koin Kemasan":     imgCoinPurse,
		"Lampu Hias Toples":       imgJarLamp,
		"Organizer Meja":          imgDeskOrganize,
		"Dompet Sachet Kopi":      imgSachetWallet,
		"Lampu Tidur Stik Es":     imgStickLamp,
		"Rak Buku Kardus":         imgBoxShelf,
		"Vas Bunga Botol":         imgHangingPot,
		"Tas Belanja Kain":        imgClothBag,
		"Pot Gantung Kaleng":      imgCanPot,
	}
}
