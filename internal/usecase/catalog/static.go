package catalog

import "github.com/Miguelito2774/jala-match-sub001/internal/entities"

var availableRoles = []entities.RoleOption{
	{Role: "Developer", Areas: []string{"Web Development", "Mobile Development", "Backend Development", "Frontend Development", "DevOps & Infrastructure"}},
	{Role: "QA Automation", Areas: []string{"Test Automation", "Performance Testing", "Security Testing", "Scripting"}},
	{Role: "QA Manual", Areas: []string{"Functional Testing", "Exploratory Testing", "Regression Testing"}},
	{Role: "UX/UI Designer", Areas: []string{"User Research", "Wireframing", "Visual Design", "Interaction Design"}},
	{Role: "Data Engineer", Areas: []string{"Data Pipelines", "ETL", "Big Data"}},
	{Role: "Data Scientist", Areas: []string{"Machine Learning", "Data Analysis", "AI/ML Operations"}},
}

var weightCriteria = []entities.WeightCriterion{
	{ID: "sfiaWeight", Name: "Nivel SFIA", DefaultValue: 15},
	{ID: "technicalWeight", Name: "Tech Stack", DefaultValue: 20},
	{ID: "psychologicalWeight", Name: "Psychological Profile", DefaultValue: 15},
	{ID: "experienceWeight", Name: "Experience", DefaultValue: 15},
	{ID: "languageWeight", Name: "Language", DefaultValue: 10},
	{ID: "interestsWeight", Name: "Interests", DefaultValue: 15},
	{ID: "timezoneWeight", Name: "Timezone", DefaultValue: 10},
}

// DefaultWeights mirrors the weight criteria defaults.
var DefaultWeights = entities.Weights{
	Sfia:          15,
	Technical:     20,
	Psychological: 15,
	Experience:    15,
	Language:      10,
	Interests:     15,
	Timezone:      10,
}
