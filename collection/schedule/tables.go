package schedule

// restriction codes printed in front of the course number
var restrictionDescriptions = map[string]string{
	"D":   "Department approval required",
	"FR":  "Freshmen only",
	"SO":  "Sophomores only",
	"JR":  "Juniors only",
	"SR":  "Seniors only",
	"LD":  "Lower division standing required",
	"UD":  "Upper division standing required",
	"GR":  "Graduate standing required",
	"PB":  "Post baccalaureate standing required",
	"XFR": "Freshmen excluded",
	"XSO": "Sophomores excluded",
	"XJR": "Juniors excluded",
	"XSR": "Seniors excluded",
	"XGR": "Graduates excluded",
	"XPB": "Post baccalaureates excluded",
	"XUD": "Upper division students excluded",
	"XLD": "Lower division students excluded",
	"ES":  "Extension students only",
	"XES": "Extension students excluded",
	"RP":  "Restricted to program majors",
	"XRP": "Program majors excluded",
}

// courses that satisfy the diversity, equity and inclusion requirement
var deiCourses = map[string]struct{}{
	"AAS 10":    {},
	"AAS 11":    {},
	"ANTH 21":   {},
	"ANTH 23":   {},
	"CGS 2A":    {},
	"CGS 105":   {},
	"COMM 10":   {},
	"COMM 102C": {},
	"CSE 175":   {},
	"EDS 117":   {},
	"EDS 125":   {},
	"ETHN 1":    {},
	"ETHN 2":    {},
	"ETHN 3":    {},
	"ETHN 100A": {},
	"HILD 7A":   {},
	"HILD 7B":   {},
	"HILD 7C":   {},
	"LTEN 27":   {},
	"LTEN 28":   {},
	"LTEN 29":   {},
	"MUS 8":     {},
	"MUS 17":    {},
	"POLI 100H": {},
	"POLI 108":  {},
	"SOCI 117":  {},
	"SOCI 127":  {},
	"SOCI 139":  {},
	"TDGE 131":  {},
	"TDHT 120":  {},
	"USP 3":     {},
	"USP 129":   {},
}

func IsDEI(code string) bool {
	_, ok := deiCourses[code]
	return ok
}
