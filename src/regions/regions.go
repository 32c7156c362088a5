package regions

// RegionUnknown is returned when no region lists the given city.
const RegionUnknown = "Unknown"

type Region struct {
	Name   string
	Cities []string
}

// table is static and never mutated at runtime. Each city is expected to
// belong to exactly one region; lookups take the first match.
var table = []Region{
	{Name: "London", Cities: []string{
		"London", "Croydon", "Bromley", "Ilford", "Harrow", "Enfield",
	}},
	{Name: "South East", Cities: []string{
		"Brighton", "Oxford", "Reading", "Milton Keynes", "Southampton",
		"Portsmouth", "Canterbury",
	}},
	{Name: "South West", Cities: []string{
		"Bristol", "Bath", "Exeter", "Plymouth", "Gloucester", "Swindon",
	}},
	{Name: "East of England", Cities: []string{
		"Cambridge", "Norwich", "Ipswich", "Luton", "Peterborough", "Colchester",
	}},
	{Name: "East Midlands", Cities: []string{
		"Nottingham", "Leicester", "Derby", "Lincoln", "Northampton",
	}},
	{Name: "West Midlands", Cities: []string{
		"Birmingham", "Coventry", "Wolverhampton", "Stoke-on-Trent", "Worcester",
	}},
	{Name: "North West", Cities: []string{
		"Manchester", "Liverpool", "Preston", "Blackpool", "Bolton", "Chester",
	}},
	{Name: "Yorkshire and the Humber", Cities: []string{
		"Leeds", "Sheffield", "Bradford", "Hull", "York", "Doncaster",
	}},
	{Name: "North East", Cities: []string{
		"Newcastle upon Tyne", "Sunderland", "Durham", "Middlesbrough", "Gateshead",
	}},
	{Name: "Scotland", Cities: []string{
		"Glasgow", "Edinburgh", "Aberdeen", "Dundee", "Inverness", "Stirling",
	}},
	{Name: "Wales", Cities: []string{
		"Cardiff", "Swansea", "Newport", "Wrexham", "Bangor",
	}},
	{Name: "Northern Ireland", Cities: []string{
		"Belfast", "Derry", "Lisburn", "Newry",
	}},
}

// Regions returns the table in display order.
func Regions() []Region {
	return table
}

// RegionForCity returns the owning region of a city by linear scan.
// First match wins; cities not in any list map to RegionUnknown.
func RegionForCity(city string) string {
	for _, r := range table {
		for _, c := range r.Cities {
			if c == city {
				return r.Name
			}
		}
	}
	return RegionUnknown
}

// CitiesForRegion returns the cities of a region, or nil if the region
// is not in the table.
func CitiesForRegion(region string) []string {
	for _, r := range table {
		if r.Name == region {
			return r.Cities
		}
	}
	return nil
}
