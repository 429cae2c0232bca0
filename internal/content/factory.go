package content

// DesignSoftware is a recommended factory design tool.
type DesignSoftware struct {
	Name           string   `json:"name"`
	Purpose        string   `json:"purpose"`
	Cost           string   `json:"cost"`
	Features       []string `json:"features"`
	Recommendation string   `json:"recommendation"`
}

// LayoutArea is one area of the factory layout table.
type LayoutArea struct {
	Area         string `json:"area"`
	Size         string `json:"size"`
	Requirements string `json:"requirements"`
	Equipment    string `json:"equipment"`
}

// ProcessStage is one step of the daily production flow.
type ProcessStage struct {
	Step    int    `json:"step"`
	Process string `json:"process"`
	Time    string `json:"time"`
	Staff   string `json:"staff"`
}

// Factory is the factory design reference page.
type Factory struct {
	Software          []DesignSoftware `json:"software"`
	Layout            []LayoutArea     `json:"layout"`
	TotalFacilitySize string           `json:"totalFacilitySize"`
	LandRequirement   string           `json:"landRequirement"`
	ProcessFlow       []ProcessStage   `json:"processFlow"`
}

// FactoryDesign returns the factory design reference tables.
func FactoryDesign() Factory {
	return Factory{
		Software: []DesignSoftware{
			{
				Name:           "AutoCAD Plant 3D",
				Purpose:        "Factory layout and piping design",
				Cost:           "Subscription-based",
				Features:       []string{"3D plant modeling", "Piping and instrumentation", "Equipment placement"},
				Recommendation: "Primary choice for detailed factory design",
			},
			{
				Name:           "SketchUp Pro",
				Purpose:        "3D modeling and visualization",
				Cost:           "$299/year",
				Features:       []string{"Easy 3D modeling", "Rendering capabilities", "Extension library"},
				Recommendation: "Good for conceptual design and presentations",
			},
			{
				Name:           "SolidWorks",
				Purpose:        "Equipment design and simulation",
				Cost:           "Educational license available",
				Features:       []string{"Parametric design", "Simulation tools", "Assembly modeling"},
				Recommendation: "Excellent for equipment design and testing",
			},
			{
				Name:           "MATLAB Simulink",
				Purpose:        "Process control and optimization",
				Cost:           "Educational license available",
				Features:       []string{"Process simulation", "Control system design", "Optimization algorithms"},
				Recommendation: "Essential for process optimization studies",
			},
		},
		Layout: []LayoutArea{
			{Area: "Raw Material Storage", Size: "200 m²", Requirements: "Ventilated, dry storage with 5-day capacity", Equipment: "Storage bins, ventilation systems"},
			{Area: "Processing Area", Size: "300 m²", Requirements: "Food-grade flooring, proper drainage", Equipment: "Washing, peeling, slicing, drying, milling equipment"},
			{Area: "Quality Control Lab", Size: "50 m²", Requirements: "Clean room standards, testing equipment", Equipment: "Moisture analyzer, particle size analyzer"},
			{Area: "Packaging Area", Size: "150 m²", Requirements: "Dust-free environment, packaging machinery", Equipment: "Packaging machines, sealing equipment"},
			{Area: "Finished Goods Storage", Size: "250 m²", Requirements: "Climate-controlled, organized storage", Equipment: "Racking systems, inventory management"},
			{Area: "Administrative Office", Size: "100 m²", Requirements: "Modern office space for management", Equipment: "Computers, communication systems"},
		},
		TotalFacilitySize: "Approximately 1,050 m² (including circulation and utility areas)",
		LandRequirement:   "2,000 m² minimum for future expansion and compliance",
		ProcessFlow: []ProcessStage{
			{Step: 1, Process: "Reception & Sorting", Time: "2 hours", Staff: "2 workers"},
			{Step: 2, Process: "Washing & Peeling", Time: "3 hours", Staff: "3 workers"},
			{Step: 3, Process: "Slicing & Drying", Time: "8 hours", Staff: "2 workers"},
			{Step: 4, Process: "Milling & Packaging", Time: "3 hours", Staff: "2 workers"},
		},
	}
}
