package engine

// Keyword tables mapping Swedish recipe vocabulary to canonical
// feature values. Tables are ordered slices, not maps: carb, cooking
// method and meal type are first-match-wins, and cuisine tie-breaking
// depends on encounter order, so iteration order must be stable.

type keywordRule struct {
	keyword   string
	canonical string
}

var proteinKeywords = []keywordRule{
	{"nötfärs", "beef"},
	{"köttfärs", "beef"},
	{"fläskfärs", "pork"},
	{"blandfärs", "mixed_meat"},
	{"kyckling", "chicken"},
	{"kycklingfilé", "chicken"},
	{"lax", "salmon"},
	{"torsk", "cod"},
	{"räkor", "shrimp"},
	{"fisk", "fish"},
	{"bacon", "pork"},
	{"skinka", "ham"},
	{"korv", "sausage"},
	{"ägg", "egg"},
	{"tofu", "tofu"},
	{"linser", "lentils"},
	{"bönor", "beans"},
	{"kikärtor", "chickpeas"},
	{"fläsk", "pork"},
	{"lamm", "lamb"},
}

var cuisineKeywords = []keywordRule{
	{"sojasås", "asian"},
	{"ingefära", "asian"},
	{"wasabi", "japanese"},
	{"miso", "japanese"},
	{"curry", "indian"},
	{"garam masala", "indian"},
	{"tikka", "indian"},
	{"tandoori", "indian"},
	{"taco", "mexican"},
	{"salsa", "mexican"},
	{"tortilla", "mexican"},
	{"parmesan", "italian"},
	{"mozzarella", "italian"},
	{"basilika", "italian"},
	{"pesto", "italian"},
	{"feta", "greek"},
	{"tzatziki", "greek"},
	{"hummus", "middle_eastern"},
	{"tahini", "middle_eastern"},
	{"harissa", "middle_eastern"},
	{"lingon", "swedish"},
	{"dill", "swedish"},
	{"grädde", "swedish"},
}

var carbKeywords = []keywordRule{
	{"pasta", "pasta"},
	{"spaghetti", "pasta"},
	{"penne", "pasta"},
	{"ris", "rice"},
	{"potatis", "potato"},
	{"bröd", "bread"},
	{"couscous", "couscous"},
	{"nudlar", "noodles"},
	{"bulgur", "bulgur"},
}

var cookingMethodKeywords = []keywordRule{
	{"wok", "stir_fried"},
	{"gratäng", "gratin"},
	{"gratinerad", "gratin"},
	{"friterad", "deep_fried"},
	{"grillad", "grilled"},
	{"grillspett", "grilled"},
	{"ugnsbakad", "baked"},
	{"ugnsstekt", "baked"},
	{"i ugn", "baked"},
	{"stekt", "fried"},
	{"kokt", "boiled"},
}

var mealTypeKeywords = []keywordRule{
	{"soppa", "soup"},
	{"sallad", "salad"},
	{"gryta", "stew"},
	{"paj", "pie"},
	{"pizza", "pizza"},
	{"pannkak", "pancakes"},
	{"smörgås", "sandwich"},
	{"efterrätt", "dessert"},
}

// Spice escalation: any medium keyword lifts mild to medium, any hot
// keyword is terminal.
var spiceMediumKeywords = []string{
	"chili",
	"curry",
	"ingefära",
	"svartpeppar",
}

var spiceHotKeywords = []string{
	"jalapeño",
	"habanero",
	"cayenne",
	"sriracha",
	"tabasco",
	"chipotle",
	"sambal",
	"stark chili",
}

// Descriptor words stripped from the ends of ingredient names before
// they are stored as ingredient features ("färsk hackad dill" → "dill").
var ingredientDescriptors = map[string]struct{}{
	"färsk":      {},
	"färska":     {},
	"hackad":     {},
	"hackade":    {},
	"finhackad":  {},
	"skivad":     {},
	"skivade":    {},
	"riven":      {},
	"rivet":      {},
	"rivna":      {},
	"tärnad":     {},
	"tärnade":    {},
	"strimlad":   {},
	"strimlade":  {},
	"pressad":    {},
	"pressade":   {},
	"malen":      {},
	"fryst":      {},
	"frysta":     {},
	"kokt":       {},
	"kokta":      {},
	"stekt":      {},
	"stekta":     {},
	"fresh":      {},
	"chopped":    {},
	"sliced":     {},
	"grated":     {},
	"cooked":     {},
	"fried":      {},
	"diced":      {},
}
