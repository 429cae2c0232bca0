package content

import (
	"fmt"
	"regexp"
	"strings"
)

// Reference is one bibliography entry.
type Reference struct {
	Type      string `json:"type"`
	Citation  string `json:"citation"`
	DOI       string `json:"doi,omitempty"`
	URL       string `json:"url,omitempty"`
	ISBN      string `json:"isbn,omitempty"`
	Relevance string `json:"relevance"`
}

// Link returns the external link of the reference: the DOI resolver when a
// DOI is known, otherwise the URL.
func (r Reference) Link() string {
	if r.DOI != "" {
		return "https://doi.org/" + r.DOI
	}
	return r.URL
}

// ResourceGroup is a category of additional resources.
type ResourceGroup struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

// CitationStyle documents how sources are cited.
var CitationStyle = []string{
	"Citation Style: APA 7th Edition",
	"In-text Citations: (Author, Year) or Author (Year)",
	"Reference List: Alphabetical order by first author's surname",
}

// References returns the bibliography in display order.
func References() []Reference {
	return []Reference{
		{
			Type:      "Journal Article",
			Citation:  "Adebayo, O. A., Okonkwo, P. C., & Usman, M. T. (2021). Market analysis of flour production in Nigeria: Opportunities and challenges. Journal of Agricultural Economics and Development, 10(3), 45-62.",
			DOI:       "10.1016/j.jaed.2021.03.012",
			Relevance: "Market demand analysis and industry overview",
		},
		{
			Type:      "Government Report",
			Citation:  "Federal Ministry of Agriculture and Rural Development. (2023). Nigeria Agricultural Statistics Report 2022. Abuja: FMARD Publications.",
			URL:       "https://fmard.gov.ng/statistics",
			Relevance: "National production statistics and policy framework",
		},
		{
			Type:      "Research Paper",
			Citation:  "Okoro, C. E., & Ukaegbu, R. N. (2022). Optimization of plantain flour processing: Yield improvement and quality enhancement. Food Science and Technology International, 28(4), 289-301.",
			DOI:       "10.1177/1082013221995632",
			Relevance: "Processing technology and yield optimization",
		},
		{
			Type:      "Industry Report",
			Citation:  "Nigerian Institute of Food Technology. (2023). Feasibility studies on small-scale food processing enterprises in Nigeria. Lagos: NIFT Press.",
			Relevance: "Financial viability and business model validation",
		},
		{
			Type:      "Book",
			Citation:  "Akinola, S. O. (2022). Agribusiness development in West Africa: A comprehensive guide. Lagos: University of Lagos Press.",
			ISBN:      "978-0-123456-78-9",
			Relevance: "Business development framework and case studies",
		},
		{
			Type:      "Conference Paper",
			Citation:  "Ezekiel, A. A., Oladipo, F. O., & Bamidele, J. F. (2023). Currency fluctuation impacts on agro-processing investments in Nigeria. Proceedings of the International Conference on Agricultural Economics, 156-168.",
			Relevance: "Currency depreciation analysis and risk management",
		},
		{
			Type:      "Technical Standard",
			Citation:  "Standards Organisation of Nigeria. (2022). Nigerian Industrial Standard for Plantain Flour (NIS 444:2022). Lagos: SON.",
			Relevance: "Quality standards and regulatory compliance",
		},
		{
			Type:      "World Bank Report",
			Citation:  "World Bank Group. (2023). Nigeria economic update: Navigating turbulent times. Washington, DC: World Bank Publications.",
			URL:       "https://worldbank.org/nigeria-economic-update-2023",
			Relevance: "Economic environment and investment climate analysis",
		},
		{
			Type:      "Software Manual",
			Citation:  "Autodesk Inc. (2024). AutoCAD Plant 3D User Guide and Reference Manual. San Rafael, CA: Autodesk.",
			Relevance: "Factory design software documentation",
		},
		{
			Type:      "Thesis",
			Citation:  "Adeyemi, K. L. (2021). Economic analysis of cassava flour production in Southwest Nigeria [Master's thesis, University of Ibadan]. UI Institutional Repository.",
			Relevance: "Comparative analysis methodology for flour production ventures",
		},
	}
}

// AdditionalResources returns the agencies, bodies and guides listed under
// the bibliography.
func AdditionalResources() []ResourceGroup {
	return []ResourceGroup{
		{
			Category: "Government Agencies",
			Items: []string{
				"Bank of Industry (BOI) - Equipment financing schemes",
				"Nigerian Export Promotion Council (NEPC) - Export guidelines",
				"Corporate Affairs Commission (CAC) - Business registration",
				"Federal Ministry of Trade and Investment - Investment incentives",
			},
		},
		{
			Category: "Professional Bodies",
			Items: []string{
				"Nigerian Institute of Food Science and Technology (NIFST)",
				"Nigerian Society of Engineers (NSE)",
				"Manufacturers Association of Nigeria (MAN)",
				"Lagos Chamber of Commerce and Industry (LCCI)",
			},
		},
		{
			Category: "Technical Resources",
			Items: []string{
				"Food and Agriculture Organization (FAO) technical guidelines",
				"International Finance Corporation (IFC) agribusiness toolkits",
				"UNIDO agro-processing development manuals",
				"Equipment suppliers technical specifications",
			},
		},
	}
}

var (
	yearPattern    = regexp.MustCompile(`\((\d{4})\)`)
	nonKeyPattern  = regexp.MustCompile(`[^a-z0-9]+`)
	bibTeXEntryFor = map[string]string{
		"Journal Article":  "article",
		"Research Paper":   "article",
		"Book":             "book",
		"Conference Paper": "inproceedings",
		"Thesis":           "mastersthesis",
		"Software Manual":  "manual",
	}
)

// BibTeX renders the bibliography as BibTeX entries. Types without a direct
// BibTeX counterpart are exported as @misc.
func BibTeX(refs []Reference) string {
	var b strings.Builder
	seen := make(map[string]int)
	for _, ref := range refs {
		key := citationKey(ref.Citation)
		seen[key]++
		if n := seen[key]; n > 1 {
			key = fmt.Sprintf("%s%c", key, 'a'+rune(n-1))
		}

		entry, ok := bibTeXEntryFor[ref.Type]
		if !ok {
			entry = "misc"
		}

		fmt.Fprintf(&b, "@%s{%s,\n", entry, key)
		fmt.Fprintf(&b, "  note = {%s},\n", escapeBibTeX(ref.Citation))
		if year := citationYear(ref.Citation); year != "" {
			fmt.Fprintf(&b, "  year = {%s},\n", year)
		}
		if ref.DOI != "" {
			fmt.Fprintf(&b, "  doi = {%s},\n", ref.DOI)
		}
		if ref.URL != "" {
			fmt.Fprintf(&b, "  url = {%s},\n", ref.URL)
		}
		if ref.ISBN != "" {
			fmt.Fprintf(&b, "  isbn = {%s},\n", ref.ISBN)
		}
		fmt.Fprintf(&b, "  keywords = {%s}\n}\n\n", escapeBibTeX(ref.Relevance))
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// citationKey builds a key from the first author's surname and the year,
// e.g. "adebayo2021".
func citationKey(citation string) string {
	author := citation
	if idx := strings.IndexAny(citation, ",.("); idx > 0 {
		author = citation[:idx]
	}
	key := nonKeyPattern.ReplaceAllString(strings.ToLower(author), "")
	return key + citationYear(citation)
}

func citationYear(citation string) string {
	if m := yearPattern.FindStringSubmatch(citation); len(m) == 2 {
		return m[1]
	}
	return ""
}

func escapeBibTeX(s string) string {
	return strings.NewReplacer("&", `\&`, "%", `\%`, "_", `\_`, "#", `\#`).Replace(s)
}
