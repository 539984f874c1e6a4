package prayer

// DefaultMethod is Muslim World League: Fajr at 18°, Isha at 17°.
const DefaultMethod = 3

// Method is an AlAdhan calculation method.
type Method struct {
	ID   int
	Name string
}

// CalculationMethods lists all supported Al Adhan API calculation methods.
var CalculationMethods = []Method{
	{0, "Shia Ithna-Ashari (Jafari)"},
	{1, "University of Islamic Sciences, Karachi"},
	{2, "Islamic Society of North America (ISNA)"},
	{3, "Muslim World League (MWL)"},
	{4, "Umm Al-Qura University, Makkah"},
	{5, "Egyptian General Authority of Survey"},
	{7, "Institute of Geophysics, University of Tehran"},
	{8, "Gulf Region"},
	{9, "Kuwait"},
	{10, "Qatar"},
	{11, "Majlis Ugama Islam Singapura (Singapore)"},
	{12, "Union Organization Islamic de France"},
	{13, "Diyanet Isleri Baskanligi, Turkey (experimental)"},
	{14, "Spiritual Administration of Muslims of Russia"},
	{15, "Moonsighting Committee Worldwide"},
	{16, "Dubai (experimental)"},
	{17, "JAKIM (Malaysia)"},
	{18, "Tunisia"},
	{19, "Algeria"},
	{20, "KEMENAG (Indonesia)"},
	{21, "Morocco"},
	{22, "Comunidade Islamica de Lisboa (Portugal)"},
	{23, "Ministry of Awqaf, Jordan"},
}

// LookupMethod finds a calculation method by ID.
func LookupMethod(id int) (Method, bool) {
	for _, m := range CalculationMethods {
		if m.ID == id {
			return m, true
		}
	}
	return Method{}, false
}
