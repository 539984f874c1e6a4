package prayer

import "sort"

// Coordinates is a point on the map in decimal degrees.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Cities holds the cities offered in the city keyboard.
var Cities = map[string]Coordinates{
	"Warszawa":  {52.2297, 21.0122},
	"Kraków":    {50.0647, 19.9450},
	"Wrocław":   {51.1079, 17.0385},
	"Poznań":    {52.4064, 16.9252},
	"Gdańsk":    {54.3520, 18.6466},
	"Łódź":      {51.7592, 19.4560},
	"Białystok": {53.1325, 23.1688},
	"Lublin":    {51.2465, 22.5684},
	"Szczecin":  {53.4285, 14.5528},
	"Katowice":  {50.2649, 19.0238},
}

// LookupCity returns the coordinates of a known city.
func LookupCity(name string) (Coordinates, bool) {
	c, ok := Cities[name]
	return c, ok
}

// CityNames returns the city names sorted alphabetically (byte order, as the keyboard shows them).
func CityNames() []string {
	names := make([]string, 0, len(Cities))
	for name := range Cities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
