package cli

import (
	"encoding/json"
	"strings"

	"github.com/samber/lo"
	"github.com/testspark/testspark/internal/domain"
)

// SchemaCmd outputs JSON Schema for testspark output types
type SchemaCmd struct {
	Type []string `short:"t" help:"Output types to include (step,notice,session,flow,project,generated_test,error). Default: all"`
}

var schemaTypes = []string{"step", "notice", "session", "flow", "project", "generated_test", "error"}

// Run executes the schema command
func (c *SchemaCmd) Run(globals *Globals) error {
	schemas := map[string]interface{}{
		"step":           stepSchema(),
		"notice":         noticeSchema(),
		"session":        sessionSchema(),
		"flow":           flowSchema(),
		"project":        projectSchema(),
		"generated_test": generatedTestSchema(),
		"error":          errorSchema(),
	}

	// Determine which schemas to output
	typesToOutput := c.Type
	if len(typesToOutput) == 0 {
		typesToOutput = schemaTypes
	}

	for _, t := range typesToOutput {
		if !lo.Contains(schemaTypes, strings.ToLower(strings.TrimSpace(t))) {
			return outputErrorCommon(globals, "INVALID_FLAGS", "unknown schema type: "+t, "use one of "+strings.Join(schemaTypes, ", "))
		}
	}

	// Build output
	output := map[string]interface{}{
		"$schema":     "http://json-schema.org/draft-07/schema#",
		"title":       "TestSpark Output Schemas",
		"description": "JSON Schema definitions for all testspark NDJSON output types",
		"definitions": map[string]interface{}{},
	}

	defs := output["definitions"].(map[string]interface{})
	for _, t := range typesToOutput {
		t = strings.ToLower(strings.TrimSpace(t))
		defs[t] = schemas[t]
	}

	// Output as JSON
	encoder := json.NewEncoder(globals.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

func prop(typ, description string) map[string]interface{} {
	return map[string]interface{}{"type": typ, "description": description}
}

func constProp(value string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "const": value}
}

func stepTypeNames() []string {
	return lo.Map(domain.StepTypes, func(t domain.StepType, _ int) string { return string(t) })
}

func stepSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"title":       "Step",
		"description": "One recorded browser interaction",
		"properties": map[string]interface{}{
			"type":          constProp("step"),
			"schemaVersion": prop("integer", "Output schema version"),
			"session":       prop("string", "Recording session id"),
			"id":            prop("integer", "Step id, unique within the session, assigned from 1"),
			"step_type": map[string]interface{}{
				"type":        "string",
				"enum":        stepTypeNames(),
				"description": "Interaction kind",
			},
			"target":      prop("string", "CSS selector or URL"),
			"value":       prop("string", "Input payload; secrets are masked"),
			"expected":    prop("string", "Expected text (assertions only)"),
			"description": prop("string", "Human-readable summary"),
			"glyph": map[string]interface{}{
				"type":        "string",
				"enum":        []string{domain.GlyphArrowUpRight, domain.GlyphMousePointer, domain.GlyphKeyboard, domain.GlyphEye},
				"description": "Icon key for the step type",
			},
		},
		"required": []string{"type", "schemaVersion", "id", "step_type", "description"},
	}
}

func noticeSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"title":       "Notice",
		"description": "User-visible feedback from the recorder",
		"properties": map[string]interface{}{
			"type":          constProp("notice"),
			"schemaVersion": prop("integer", "Output schema version"),
			"severity": map[string]interface{}{
				"type": "string",
				"enum": []string{string(domain.SeverityInfo), string(domain.SeveritySuccess), string(domain.SeverityError)},
			},
			"message":   prop("string", "Notice text"),
			"timestamp": map[string]interface{}{"type": "string", "format": "date-time"},
		},
		"required": []string{"type", "severity", "message"},
	}
}

func sessionSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"title":       "Session",
		"description": "Recording lifecycle event",
		"properties": map[string]interface{}{
			"type":          constProp("session"),
			"schemaVersion": prop("integer", "Output schema version"),
			"session":       prop("string", "Recording session id"),
			"name":          prop("string", "Recording name"),
			"url":           prop("string", "Recorded URL"),
			"state": map[string]interface{}{
				"type": "string",
				"enum": []string{string(domain.StateIdle), string(domain.StateRecording), string(domain.StateReviewing)},
			},
			"step_count": prop("integer", "Steps currently in the session"),
			"timestamp":  map[string]interface{}{"type": "string", "format": "date-time"},
		},
		"required": []string{"type", "session", "state", "step_count"},
	}
}

func flowSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"title":       "Flow",
		"description": "Node/edge projection of the recorded steps",
		"properties": map[string]interface{}{
			"type":          constProp("flow"),
			"schemaVersion": prop("integer", "Output schema version"),
			"session":       prop("string", "Recording session id"),
			"nodes": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"id":        prop("string", "Step id as a string"),
						"label":     prop("string", "Step description"),
						"step_type": prop("string", "Interaction kind"),
						"position": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"x": prop("number", "Horizontal offset"),
								"y": prop("number", "Vertical offset, index*150"),
							},
						},
						"entry": prop("boolean", "True for the first node"),
					},
				},
			},
			"edges": map[string]interface{}{
				"type": "array",
				"items": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"id":       prop("string", "e<source>-<target>"),
						"source":   prop("string", "Source node id"),
						"target":   prop("string", "Target node id"),
						"animated": prop("boolean", "Always true"),
					},
				},
			},
		},
		"required": []string{"type", "nodes", "edges"},
	}
}

func projectSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"title":       "Project",
		"description": "Dashboard sample project",
		"properties": map[string]interface{}{
			"type":        constProp("project"),
			"id":          prop("integer", "Project id"),
			"name":        prop("string", "Project name"),
			"description": prop("string", "Project summary"),
			"test_count":  prop("integer", "Number of tests"),
			"pass_rate":   prop("integer", "Pass rate percentage 0..100"),
			"last_run":    prop("string", "Relative time of the last run"),
			"status": map[string]interface{}{
				"type": "string",
				"enum": []string{string(domain.ProjectStable), string(domain.ProjectIssues)},
			},
		},
		"required": []string{"type", "id", "name"},
	}
}

func generatedTestSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"title":       "Generated Test",
		"description": "Test script derived from a recording",
		"properties": map[string]interface{}{
			"type":      constProp("generated_test"),
			"session":   prop("string", "Recording session id"),
			"framework": prop("string", "Target test framework"),
			"source":    prop("string", "Script source code"),
		},
		"required": []string{"type", "framework", "source"},
	}
}

func errorSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"title":       "Error",
		"description": "Error message from testspark",
		"properties": map[string]interface{}{
			"type":          constProp("error"),
			"schemaVersion": prop("integer", "Output schema version"),
			"code":          prop("string", "Error code (e.g., VALIDATION, INVALID_WHERE)"),
			"message":       prop("string", "Human-readable error message"),
			"hint":          prop("string", "Suggested fix"),
		},
		"required": []string{"type", "code", "message"},
	}
}
