package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"
	FieldInput      = "input"
	FieldOutput     = "output"

	// Configuration fields.
	FieldConfigFile  = "config_file"
	FieldSource      = "source"
	FieldFlavor      = "flavor"
	FieldJobs        = "jobs"
	FieldIndent      = "indent"
	FieldStartIndent = "start_indent"
	FieldPattern     = "pattern"
	FieldPack        = "pack"

	// Statistics fields.
	FieldFilesDiscovered  = "files_discovered"
	FieldFilesProcessed   = "files_processed"
	FieldFilesWithIssues  = "files_with_issues"
	FieldDiagnosticsTotal = "diagnostics_total"
	FieldElapsed          = "elapsed"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Rule fields.
	FieldRule     = "rule"
	FieldSeverity = "severity"
	FieldLine     = "line"
)
