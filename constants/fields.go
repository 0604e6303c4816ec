package constants

// DegreeKeywords is the fixed vocabulary used to spot qualification lines.
// Matching is a case-insensitive substring test, so short tokens like "bs"
// intentionally hit inside longer words.
var DegreeKeywords = []string{
	"bs", "bsc", "ba", "be", "btech", "btec", "bachelor",
	"ms", "msc", "ma", "me", "mtech", "master", "masters",
	"mba", "bba", "mphil", "phd", "doctorate",
	"intermediate", "fsc", "fa", "hssc", "hsc",
	"diploma", "certificate", "degree",
}

// InstitutionKeywords marks lines naming a school or university.
var InstitutionKeywords = []string{
	"university", "college", "institute", "school", "academy",
	"campus", "polytechnic", "technical", "engineering",
}

// AddressKeywords is the tier-2 address heuristic vocabulary.
var AddressKeywords = []string{
	"street", "st", "avenue", "ave", "road", "rd", "city", "state",
}

// OrgSuffixes supplements InstitutionKeywords when deriving ORGANIZATION
// entities from proper-noun phrases: employers carry these instead of
// institution words.
var OrgSuffixes = []string{
	"corp", "inc", "ltd", "llc", "company", "technologies",
	"solutions", "systems", "group",
}

// ReportColumns is the fixed report header, in output order.
var ReportColumns = []string{
	"S. No",
	"Name",
	"Address",
	"Email",
	"Contact Number",
	"Last Qualification",
	"Last Institution Attended",
}
