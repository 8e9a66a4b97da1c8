package project

type ModelType string

const (
	ModelTypeLinearRegression ModelType = "LinearRegression"
)

type Model struct {
	Type ModelType `json:"type"`
}

type Project struct {
	Name        string  `json:"name"`
	Author      string  `json:"author"`
	Description string  `json:"description"`
	Models      []Model `json:"models"`
}

// Fixtures returns the sample project list used by demos and tests. Each
// call builds a new list, so callers may modify the result.
func Fixtures() []Project {
	return []Project{
		{
			Name:        "IMDB_exploratory",
			Author:      "Anton Vasin",
			Description: "Building model to predict rating for movies from IMDB",
			Models:      []Model{{Type: ModelTypeLinearRegression}},
		},
	}
}
