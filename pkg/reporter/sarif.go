package reporter

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/yaklabco/mdindent/pkg/analysis"
	"github.com/yaklabco/mdindent/pkg/config"
	"github.com/yaklabco/mdindent/pkg/lint"
	"github.com/yaklabco/mdindent/pkg/runner"
)

const (
	sarifVersion   = "2.1.0"
	sarifSchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	toolName       = "mdindent"
	toolHomepage   = "https://github.com/yaklabco/mdindent"
)

// SARIFOutput is a SARIF 2.1.0 log with a single run. Only the properties
// mdindent fills in are modelled.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun is one invocation of mdindent.
type SARIFRun struct {
	Tool struct {
		Driver SARIFDriver `json:"driver"`
	} `json:"tool"`
	Invocations []SARIFInvocation `json:"invocations"`
	Results     []SARIFResult     `json:"results"`
}

// SARIFDriver describes mdindent and the rules that reported.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule is a reportingDescriptor.
type SARIFRule struct {
	ID               string         `json:"id"`
	Name             string         `json:"name,omitempty"`
	ShortDescription SARIFText      `json:"shortDescription"`
	DefaultConfig    *SARIFLevel    `json:"defaultConfiguration,omitempty"`
	Properties       map[string]any `json:"properties,omitempty"`
}

// SARIFText is a message or multiformatMessageString.
type SARIFText struct {
	Text string `json:"text"`
}

// SARIFLevel is a reportingConfiguration.
type SARIFLevel struct {
	Level string `json:"level"`
}

// SARIFInvocation records whether every file could be linted. Files that
// failed appear as notifications.
type SARIFInvocation struct {
	ExecutionSuccessful bool                `json:"executionSuccessful"`
	Notifications       []SARIFNotification `json:"toolExecutionNotifications,omitempty"`
}

// SARIFNotification reports a file that could not be linted.
type SARIFNotification struct {
	Level     string          `json:"level"`
	Message   SARIFText       `json:"message"`
	Locations []SARIFLocation `json:"locations,omitempty"`
}

// SARIFResult is one diagnostic.
type SARIFResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex int             `json:"ruleIndex"`
	Level     string          `json:"level"`
	Message   SARIFText       `json:"message"`
	Locations []SARIFLocation `json:"locations"`
}

// SARIFLocation wraps a physicalLocation.
type SARIFLocation struct {
	PhysicalLocation struct {
		ArtifactLocation struct {
			URI string `json:"uri"`
		} `json:"artifactLocation"`
		Region *SARIFRegion `json:"region,omitempty"`
	} `json:"physicalLocation"`
}

// SARIFRegion is a 1-based line and column span.
type SARIFRegion struct {
	StartLine   int        `json:"startLine"`
	StartColumn int        `json:"startColumn,omitempty"`
	EndLine     int        `json:"endLine,omitempty"`
	EndColumn   int        `json:"endColumn,omitempty"`
	Snippet     *SARIFText `json:"snippet,omitempty"`
}

func sarifLocation(uri string, region *SARIFRegion) SARIFLocation {
	var loc SARIFLocation
	loc.PhysicalLocation.ArtifactLocation.URI = uri
	loc.PhysicalLocation.Region = region
	return loc
}

// SARIFReporter writes results as SARIF for code scanning services.
type SARIFReporter struct {
	opts     Options
	out      io.Writer
	registry *lint.Registry
}

// NewSARIFReporter creates a SARIF reporter describing rules from
// lint.DefaultRegistry.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{opts: opts, out: opts.Writer, registry: lint.DefaultRegistry}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	log := r.build(result)

	enc := json.NewEncoder(r.out)
	if !r.opts.Compact {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(log); err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}
	return len(log.Runs[0].Results), nil
}

func (r *SARIFReporter) build(result *runner.Result) *SARIFOutput {
	run := SARIFRun{
		Invocations: []SARIFInvocation{{ExecutionSuccessful: true}},
		Results:     []SARIFResult{},
	}
	run.Tool.Driver = SARIFDriver{
		Name:           toolName,
		Version:        cmp.Or(r.opts.ToolVersion, DefaultOptions().ToolVersion),
		InformationURI: toolHomepage,
		Rules:          []SARIFRule{},
	}

	if result != nil {
		r.addFiles(&run, result.Files)
	}

	return &SARIFOutput{Schema: sarifSchemaURI, Version: sarifVersion, Runs: []SARIFRun{run}}
}

// addFiles appends results and notifications for files. Each rule is listed
// once in the driver, in order of first appearance.
func (r *SARIFReporter) addFiles(run *SARIFRun, files []runner.FileOutcome) {
	invocation := &run.Invocations[0]
	driver := &run.Tool.Driver
	indexOf := make(map[string]int)

	for _, file := range files {
		uri := filepath.ToSlash(analysis.RelativePath(file.Path, r.opts.WorkingDir))

		if file.Error != nil {
			invocation.ExecutionSuccessful = false
			invocation.Notifications = append(invocation.Notifications, SARIFNotification{
				Level:     "error",
				Message:   SARIFText{Text: file.Error.Error()},
				Locations: []SARIFLocation{sarifLocation(uri, nil)},
			})
			continue
		}
		if file.Result == nil || file.Result.FileResult == nil {
			continue
		}

		for i := range file.Result.Diagnostics {
			diag := &file.Result.Diagnostics[i]
			index, ok := indexOf[diag.RuleID]
			if !ok {
				index = len(driver.Rules)
				indexOf[diag.RuleID] = index
				driver.Rules = append(driver.Rules, r.rule(diag))
			}

			region := &SARIFRegion{
				StartLine:   diag.StartLine,
				StartColumn: diag.StartColumn,
				EndLine:     diag.EndLine,
				EndColumn:   diag.EndColumn,
			}
			if diag.Context != "" {
				region.Snippet = &SARIFText{Text: diag.Context}
			}

			run.Results = append(run.Results, SARIFResult{
				RuleID:    diag.RuleID,
				RuleIndex: index,
				Level:     sarifLevel(diag.Severity),
				Message:   SARIFText{Text: diag.Message},
				Locations: []SARIFLocation{sarifLocation(uri, region)},
			})
		}
	}
}

// rule describes the rule behind diag, preferring registry metadata.
func (r *SARIFReporter) rule(diag *lint.Diagnostic) SARIFRule {
	desc := SARIFRule{
		ID:               diag.RuleID,
		Name:             diag.RuleName,
		ShortDescription: SARIFText{Text: diag.RuleName},
		DefaultConfig:    &SARIFLevel{Level: sarifLevel(diag.Severity)},
	}
	if r.registry == nil {
		return desc
	}
	if rule, ok := r.registry.GetByID(diag.RuleID); ok {
		desc.ShortDescription.Text = rule.Description()
		desc.DefaultConfig.Level = sarifLevel(rule.DefaultSeverity())
		if tags := rule.Tags(); len(tags) > 0 {
			desc.Properties = map[string]any{"tags": tags}
		}
	}
	return desc
}

func sarifLevel(severity config.Severity) string {
	switch severity {
	case config.SeverityError:
		return "error"
	case config.SeverityInfo:
		return "note"
	default:
		return "warning"
	}
}
