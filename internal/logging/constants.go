package logging

// Standardized field names for structured logging.
const (
	FieldFile       = "file_path"
	FieldStep       = "step"
	FieldCommand    = "command"
	FieldDirectory  = "directory"
	FieldExitCode   = "exit_code"
	FieldDuration   = "duration_ms"
	FieldCount      = "count"
	FieldExtractor  = "extractor"
	FieldInputDir   = "input_dir"
	FieldOutputFile = "output_file"
	FieldSheet      = "sheet"
)
