// pkg/registry/schema.go
package registry

// Categories mirror the directory layout under internal/workers; the
// registry-updater check command relies on this mapping.
const (
	CategorySurvey      = "survey"
	CategoryMatching    = "matching"
	CategoryCalculators = "calculators"
	CategoryLead        = "lead"
	CategoryCRM         = "crm"
	CategoryAuth        = "auth"
)

var KnownCategories = []string{
	CategorySurvey,
	CategoryMatching,
	CategoryCalculators,
	CategoryLead,
	CategoryCRM,
	CategoryAuth,
}

// ActivityRegistry is the catalog of worker activities available to the
// lead-pipeline workflows.
type ActivityRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Activities  []Activity `json:"activities"`
}

type Activity struct {
	ID                   string                 `json:"id"`
	DisplayName          string                 `json:"displayName"`
	Description          string                 `json:"description"`
	Category             string                 `json:"category"`
	Version              string                 `json:"version"`
	TaskType             string                 `json:"taskType"`
	ImplementationStatus string                 `json:"implementationStatus"`
	InputSchema          map[string]interface{} `json:"inputSchema"`
	OutputSchema         map[string]interface{} `json:"outputSchema"`
	ErrorCodes           []string               `json:"errorCodes"`
	Timeout              string                 `json:"timeout"`
	Retries              int                    `json:"retries"`
	Workflows            []string               `json:"workflows"`
	Tags                 []string               `json:"tags"`
}

// PackagePath returns the expected package directory for the activity
// relative to internal/workers.
func (a *Activity) PackagePath() string {
	return a.Category + "/" + a.TaskType
}
