package specificity

import "strings"

// entry maps a phrase to a canonical value
type entry struct {
	phrase []string
	value  string
}

func entries(pairs ...string) []entry {
	out := make([]entry, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, entry{phrase: strings.Fields(pairs[i]), value: pairs[i+1]})
	}
	return out
}

// device brands keyed by the tokens shoppers use for them
var brandDict = entries(
	"apple", "Apple", "mac", "Apple", "macbook", "Apple", "imac", "Apple",
	"iphone", "Apple", "ipad", "Apple", "airpods", "Apple",
	"dell", "Dell", "alienware", "Alienware", "xps", "Dell",
	"hp", "HP", "hewlett packard", "HP", "omen", "HP",
	"lenovo", "Lenovo", "thinkpad", "Lenovo", "legion", "Lenovo",
	"asus", "ASUS", "rog", "ASUS", "zenbook", "ASUS",
	"acer", "Acer", "predator", "Acer",
	"msi", "MSI", "razer", "Razer", "gigabyte", "Gigabyte",
	"samsung", "Samsung", "galaxy", "Samsung",
	"google", "Google", "pixel", "Google",
	"microsoft", "Microsoft", "surface", "Microsoft",
	"sony", "Sony", "lg", "LG", "bose", "Bose", "logitech", "Logitech",
	"huawei", "Huawei", "xiaomi", "Xiaomi", "oneplus", "OnePlus",
	"framework", "Framework", "corsair", "Corsair", "nintendo", "Nintendo",
)

type vendorKind int

const (
	vendorGPU vendorKind = iota + 1
	vendorCPU
	// vendorEither resolves to gpu only when the query talks about graphics
	vendorEither
)

type vendorEntry struct {
	entry
	kind vendorKind
}

var vendorDict = []vendorEntry{
	{entry{[]string{"nvidia"}, "NVIDIA"}, vendorGPU},
	{entry{[]string{"geforce"}, "NVIDIA"}, vendorGPU},
	{entry{[]string{"rtx"}, "NVIDIA"}, vendorGPU},
	{entry{[]string{"gtx"}, "NVIDIA"}, vendorGPU},
	{entry{[]string{"radeon"}, "AMD"}, vendorGPU},
	{entry{[]string{"ryzen"}, "AMD"}, vendorCPU},
	{entry{[]string{"threadripper"}, "AMD"}, vendorCPU},
	{entry{[]string{"amd"}, "AMD"}, vendorEither},
	{entry{[]string{"intel", "arc"}, "Intel"}, vendorGPU},
	{entry{[]string{"intel"}, "Intel"}, vendorEither},
	{entry{[]string{"core", "i5"}, "Intel"}, vendorCPU},
	{entry{[]string{"core", "i7"}, "Intel"}, vendorCPU},
	{entry{[]string{"core", "i9"}, "Intel"}, vendorCPU},
	{entry{[]string{"i3"}, "Intel"}, vendorCPU},
	{entry{[]string{"i5"}, "Intel"}, vendorCPU},
	{entry{[]string{"i7"}, "Intel"}, vendorCPU},
	{entry{[]string{"i9"}, "Intel"}, vendorCPU},
	{entry{[]string{"xeon"}, "Intel"}, vendorCPU},
}

// tokens that put an ambiguous vendor on the graphics side
var graphicsContext = []string{"gpu", "graphics", "card", "radeon", "vram"}

var multiColors = entries(
	"space gray", "space gray", "space grey", "space gray",
	"space black", "space black", "rose gold", "rose gold",
	"midnight blue", "midnight blue", "sky blue", "sky blue",
	"navy blue", "navy", "forest green", "green", "off white", "white",
)

var singleColors = entries(
	"black", "black", "white", "white", "silver", "silver",
	"gray", "gray", "grey", "gray", "graphite", "graphite",
	"gold", "gold", "pink", "pink", "red", "red", "blue", "blue",
	"navy", "navy", "green", "green", "purple", "purple",
	"yellow", "yellow", "orange", "orange", "beige", "beige",
	"brown", "brown", "midnight", "midnight", "starlight", "starlight",
)

// compound labels win over the shorter phrases they contain
var compoundTypes = entries(
	"gaming pc", "desktop", "gaming desktop", "desktop", "gaming rig", "desktop",
	"desktop computer", "desktop", "desktop pc", "desktop", "all in one", "desktop",
	"gaming laptop", "laptop", "laptop computer", "laptop", "2 in 1", "laptop",
	"graphics card", "gpu", "video card", "gpu",
	"smart watch", "smartwatch", "cell phone", "phone", "mobile phone", "phone",
	"coffee maker", "coffee maker", "e reader", "ereader",
)

var singleTypes = entries(
	"pc", "desktop", "desktop", "desktop", "desktops", "desktop", "tower", "desktop", "imac", "desktop",
	"laptop", "laptop", "laptops", "laptop", "notebook", "laptop", "notebooks", "laptop",
	"macbook", "laptop", "ultrabook", "laptop", "chromebook", "laptop",
	"computer", "electronics", "computers", "electronics", "electronics", "electronics",
	"gadget", "electronics", "gadgets", "electronics", "device", "electronics",
	"phone", "phone", "phones", "phone", "smartphone", "phone", "iphone", "phone",
	"tablet", "tablet", "tablets", "tablet", "ipad", "tablet",
	"monitor", "monitor", "monitors", "monitor",
	"headphones", "headphones", "headset", "headphones", "earbuds", "headphones", "airpods", "headphones",
	"tv", "tv", "television", "tv", "camera", "camera", "console", "console",
	"gpu", "gpu", "keyboard", "keyboard", "mouse", "mouse", "smartwatch", "smartwatch",
	"book", "book", "books", "book", "novel", "book", "novels", "book",
	"ebook", "ebook", "audiobook", "audiobook", "kindle", "ereader",
	"sofa", "sofa", "couch", "sofa", "chair", "chair", "desk", "desk",
	"lamp", "lamp", "blender", "blender", "vacuum", "vacuum", "mattress", "mattress",
)

// use-case tags and the phrases that signal them
var attributeDict = entries(
	"gaming", "gaming", "gamer", "gaming", "games", "gaming", "game", "gaming", "esports", "gaming",
	"school", "school", "student", "school", "students", "school", "college", "school",
	"university", "school", "homework", "school", "studying", "school",
	"work", "work", "office", "work", "business", "work", "professional", "work",
	"productivity", "work", "coding", "work", "programming", "work", "developer", "work",
	"creative", "creative", "design", "creative", "designer", "creative",
	"video editing", "creative", "photo editing", "creative", "editing", "creative",
	"photoshop", "creative", "music production", "creative", "drawing", "creative",
	"budget", "budget", "cheap", "budget", "affordable", "budget", "inexpensive", "budget",
	"entry level", "budget", "value", "budget",
	"premium", "premium", "high end", "premium", "flagship", "premium", "luxury", "premium",
	"top of the line", "premium",
)

// genericTypes never make a query specific on their own
var genericTypes = []string{"laptop", "electronics"}
