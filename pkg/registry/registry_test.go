// pkg/registry/registry_test.go
package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRegistry(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "registry.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const minimalRegistry = `{
	"version": "1.0.0",
	"lastUpdated": "2025-06-10T09:00:00Z",
	"activities": [
		{
			"id": "score-partners",
			"displayName": "Score Partners",
			"description": "Scores the lender catalog",
			"category": "matching",
			"version": "1.0.0",
			"taskType": "score-partners",
			"implementationStatus": "completed",
			"inputSchema": {
				"type": "object",
				"required": ["survey"],
				"properties": {
					"survey": {"type": "object"}
				}
			},
			"outputSchema": {},
			"errorCodes": ["PARTNER_MATCH_FAILED"],
			"timeout": "30s",
			"retries": 0,
			"workflows": [],
			"tags": []
		}
	]
}`

func TestLoadRegistry(t *testing.T) {
	path := writeRegistry(t, minimalRegistry)

	reg, err := LoadRegistry(path)
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", reg.Version)
	require.Len(t, reg.Activities, 1)
	assert.Equal(t, "score-partners", reg.Activities[0].TaskType)
	assert.Equal(t, []string{"PARTNER_MATCH_FAILED"}, reg.Activities[0].ErrorCodes)
}

func TestLoadRegistry_MissingFile(t *testing.T) {
	_, err := LoadRegistry(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestFindByTaskType(t *testing.T) {
	path := writeRegistry(t, minimalRegistry)
	reg, err := LoadRegistry(path)
	require.NoError(t, err)

	activity, ok := reg.FindByTaskType("score-partners")
	require.True(t, ok)
	assert.Equal(t, "Score Partners", activity.DisplayName)

	_, ok = reg.FindByTaskType("unknown-task")
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ActivityRegistry)
		wantErr string
	}{
		{
			name:   "valid registry",
			mutate: func(r *ActivityRegistry) {},
		},
		{
			name: "no activities",
			mutate: func(r *ActivityRegistry) {
				r.Activities = nil
			},
			wantErr: "no activities",
		},
		{
			name: "duplicate id",
			mutate: func(r *ActivityRegistry) {
				r.Activities = append(r.Activities, r.Activities[0])
			},
			wantErr: "duplicate activity ID",
		},
		{
			name: "missing task type",
			mutate: func(r *ActivityRegistry) {
				r.Activities[0].TaskType = ""
			},
			wantErr: "missing required field: TaskType",
		},
		{
			name: "missing category",
			mutate: func(r *ActivityRegistry) {
				r.Activities[0].Category = ""
			},
			wantErr: "missing required field: Category",
		},
		{
			name: "unknown category",
			mutate: func(r *ActivityRegistry) {
				r.Activities[0].Category = "franchise"
			},
			wantErr: "unknown category",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := LoadRegistry(writeRegistry(t, minimalRegistry))
			require.NoError(t, err)
			tt.mutate(reg)

			err = reg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateInput(t *testing.T) {
	reg, err := LoadRegistry(writeRegistry(t, minimalRegistry))
	require.NoError(t, err)

	violations, err := reg.ValidateInput("score-partners", map[string]interface{}{
		"survey": map[string]interface{}{"zip_code": "78701"},
	})
	require.NoError(t, err)
	assert.Empty(t, violations)

	violations, err = reg.ValidateInput("score-partners", map[string]interface{}{
		"leadId": "lead-1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, violations)

	_, err = reg.ValidateInput("unknown-task", map[string]interface{}{})
	require.Error(t, err)
}

func TestShippedRegistryIsValid(t *testing.T) {
	reg, err := LoadRegistry("../../configs/registry.json")
	require.NoError(t, err)

	require.NoError(t, reg.Validate())

	expected := []string{
		"advance-survey-step",
		"validate-survey-data",
		"score-partners",
		"compute-quote",
		"create-lead-record",
		"check-priority-routing",
		"index-lead-record",
		"send-notification",
		"crm-lead-create",
		"resolve-session",
	}
	for _, taskType := range expected {
		_, ok := reg.FindByTaskType(taskType)
		assert.True(t, ok, "missing activity for %s", taskType)
	}
}
