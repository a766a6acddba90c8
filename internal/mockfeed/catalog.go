package mockfeed

import (
	"strings"

	"github.com/DenserMeerkat/fr-frontend-next/pkg/api"
)

// symbolCatalog is the fixed instrument universe served by the mock feed,
// grouped here only by comment.
var symbolCatalog = []api.StockSymbol{
	// Technology & Software
	{Symbol: "aapl", CompanyName: "Apple Inc", SymbolID: 81},
	{Symbol: "msft", CompanyName: "Microsoft Corporation", SymbolID: 248},
	{Symbol: "googl", CompanyName: "Alphabet Inc", SymbolID: 377},
	{Symbol: "goog", CompanyName: "Alphabet Inc", SymbolID: 523},
	{Symbol: "fb", CompanyName: "Facebook Inc", SymbolID: 129},
	{Symbol: "nvda", CompanyName: "NVIDIA Corporation", SymbolID: 99},
	{Symbol: "intc", CompanyName: "Intel Corporation", SymbolID: 416},
	{Symbol: "amd", CompanyName: "Advanced Micro Devices Inc", SymbolID: 387},
	{Symbol: "orcl", CompanyName: "Oracle Corporation", SymbolID: 346},
	{Symbol: "adbe", CompanyName: "Adobe Systems Incorporated", SymbolID: 365},

	// Healthcare & Pharmaceuticals
	{Symbol: "jnj", CompanyName: "Johnson Johnson", SymbolID: 339},
	{Symbol: "pfe", CompanyName: "Pfizer Inc", SymbolID: 566},
	{Symbol: "mrk", CompanyName: "Merck Company Inc", SymbolID: 382},
	{Symbol: "abbv", CompanyName: "AbbVie Inc", SymbolID: 150},
	{Symbol: "lly", CompanyName: "Eli Lilly and Company", SymbolID: 35},
	{Symbol: "amgn", CompanyName: "Amgen Inc", SymbolID: 139},
	{Symbol: "gild", CompanyName: "Gilead Sciences Inc", SymbolID: 461},
	{Symbol: "biib", CompanyName: "Biogen Inc", SymbolID: 306},
	{Symbol: "regn", CompanyName: "Regeneron Pharmaceuticals Inc", SymbolID: 195},
	{Symbol: "vrtx", CompanyName: "Vertex Pharmaceuticals Incorporated", SymbolID: 137},

	// Financial Services & Banking
	{Symbol: "jpm", CompanyName: "J P Morgan Chase Co", SymbolID: 7},
	{Symbol: "bac", CompanyName: "Bank of America Corporation", SymbolID: 494},
	{Symbol: "wfc", CompanyName: "Wells Fargo Company", SymbolID: 482},
	{Symbol: "c", CompanyName: "Citigroup Inc", SymbolID: 479},
	{Symbol: "usb", CompanyName: "U S Bancorp", SymbolID: 455},
	{Symbol: "pnc", CompanyName: "PNC Financial Services Group Inc The", SymbolID: 94},
	{Symbol: "bk", CompanyName: "Bank Of New York Mellon Corporation The", SymbolID: 161},
	{Symbol: "mtb", CompanyName: "M T Bank Corporation", SymbolID: 56},
	{Symbol: "gs", CompanyName: "Goldman Sachs Group Inc The", SymbolID: 301},
	{Symbol: "ms", CompanyName: "Morgan Stanley", SymbolID: 497},
	{Symbol: "axp", CompanyName: "American Express Company", SymbolID: 350},

	// Energy & Oil
	{Symbol: "xom", CompanyName: "Exxon Mobil Corporation", SymbolID: 364},
	{Symbol: "cvx", CompanyName: "Chevron Corporation", SymbolID: 323},
	{Symbol: "cop", CompanyName: "ConocoPhillips", SymbolID: 1},
	{Symbol: "eog", CompanyName: "EOG Resources Inc", SymbolID: 470},
	{Symbol: "pxd", CompanyName: "Pioneer Natural Resources Company", SymbolID: 20},
	{Symbol: "oxy", CompanyName: "Occidental Petroleum Corporation", SymbolID: 465},
	{Symbol: "apc", CompanyName: "Anadarko Petroleum Corporation", SymbolID: 305},
	{Symbol: "dvn", CompanyName: "Devon Energy Corporation", SymbolID: 543},
	{Symbol: "apa", CompanyName: "Apache Corporation", SymbolID: 577},
	{Symbol: "mro", CompanyName: "Marathon Oil Corporation", SymbolID: 298},
	{Symbol: "hes", CompanyName: "Hess Corporation", SymbolID: 216},
	{Symbol: "mur", CompanyName: "Murphy Oil Corporation", SymbolID: 168},
	{Symbol: "slb", CompanyName: "Schlumberger N V", SymbolID: 459},
	{Symbol: "hal", CompanyName: "Halliburton Company", SymbolID: 396},

	// Consumer & Retail
	{Symbol: "amzn", CompanyName: "Amazon com Inc", SymbolID: 206},
	{Symbol: "wmt", CompanyName: "Walmart Inc", SymbolID: 249},
	{Symbol: "hd", CompanyName: "Home Depot Inc The", SymbolID: 514},
	{Symbol: "low", CompanyName: "Lowe s Companies Inc", SymbolID: 320},
	{Symbol: "tgt", CompanyName: "Target Corporation", SymbolID: 146},
	{Symbol: "cost", CompanyName: "Costco Wholesale Corporation", SymbolID: 565},
	{Symbol: "tjx", CompanyName: "TJX Companies Inc The", SymbolID: 209},
	{Symbol: "ko", CompanyName: "Coca Cola Company The", SymbolID: 192},
	{Symbol: "pep", CompanyName: "Pepsico Inc", SymbolID: 464},
	{Symbol: "mcd", CompanyName: "McDonald s Corporation", SymbolID: 103},
	{Symbol: "sbux", CompanyName: "Starbucks Corporation", SymbolID: 71},

	// Industrial & Manufacturing
	{Symbol: "ba", CompanyName: "Boeing Company The", SymbolID: 140},
	{Symbol: "lmt", CompanyName: "Lockheed Martin Corporation", SymbolID: 208},
	{Symbol: "noc", CompanyName: "Northrop Grumman Corporation", SymbolID: 47},
	{Symbol: "rtn", CompanyName: "Raytheon Company", SymbolID: 133},
	{Symbol: "gd", CompanyName: "General Dynamics Corporation", SymbolID: 526},
	{Symbol: "txt", CompanyName: "Textron Inc", SymbolID: 402},
	{Symbol: "col", CompanyName: "Rockwell Collins Inc", SymbolID: 27},
	{Symbol: "cat", CompanyName: "Caterpillar Inc", SymbolID: 19},
	{Symbol: "de", CompanyName: "Deere Company", SymbolID: 49},
	{Symbol: "cmi", CompanyName: "Cummins Inc", SymbolID: 224},
	{Symbol: "etn", CompanyName: "Eaton Corporation PLC", SymbolID: 22},
	{Symbol: "emr", CompanyName: "Emerson Electric Company", SymbolID: 330},
	{Symbol: "hon", CompanyName: "Honeywell International Inc", SymbolID: 489},
	{Symbol: "ge", CompanyName: "General Electric Company", SymbolID: 594},

	// Transportation & Logistics
	{Symbol: "dal", CompanyName: "Delta Air Lines Inc", SymbolID: 521},
	{Symbol: "ual", CompanyName: "United Continental Holdings Inc", SymbolID: 430},
	{Symbol: "aal", CompanyName: "American Airlines Group Inc", SymbolID: 52},
	{Symbol: "luv", CompanyName: "Southwest Airlines Company", SymbolID: 156},
	{Symbol: "ups", CompanyName: "United Parcel Service Inc", SymbolID: 403},
	{Symbol: "fdx", CompanyName: "FedEx Corporation", SymbolID: 561},
	{Symbol: "chrw", CompanyName: "C H Robinson Worldwide Inc", SymbolID: 307},
	{Symbol: "expd", CompanyName: "Expeditors International of Washington Inc", SymbolID: 427},
	{Symbol: "unp", CompanyName: "Union Pacific Corporation", SymbolID: 231},
	{Symbol: "csx", CompanyName: "CSX Corporation", SymbolID: 329},

	// Media & Entertainment
	{Symbol: "dis", CompanyName: "Walt Disney Company The", SymbolID: 227},
	{Symbol: "cmcsa", CompanyName: "Comcast Corporation", SymbolID: 545},
	{Symbol: "cbs", CompanyName: "CBS Corporation", SymbolID: 100},
	{Symbol: "viab", CompanyName: "Viacom Inc", SymbolID: 50},
	{Symbol: "fox", CompanyName: "Twenty First Century Fox Inc", SymbolID: 313},
	{Symbol: "foxa", CompanyName: "Twenty First Century Fox Inc", SymbolID: 493},
	{Symbol: "nflx", CompanyName: "Netflix Inc", SymbolID: 570},
	{Symbol: "atvi", CompanyName: "Activision Blizzard Inc", SymbolID: 214},
	{Symbol: "ea", CompanyName: "Electronic Arts Inc", SymbolID: 111},
	{Symbol: "nwsa", CompanyName: "News Corporation", SymbolID: 505},
}

func findSymbol(symbol string) (api.StockSymbol, bool) {
	for _, s := range symbolCatalog {
		if strings.EqualFold(s.Symbol, symbol) {
			return s, true
		}
	}
	return api.StockSymbol{}, false
}
