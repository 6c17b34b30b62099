package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldTrack is the standardized structured logging key for the target track name.
	FieldTrack = "track"
	// FieldCommand is the standardized structured logging key for the CLI command name.
	FieldCommand = "command"
	// FieldInvocationID identifies one command invocation across all of its records.
	FieldInvocationID = "invocation_id"
	// FieldEventType classifies warnings and errors for filtering.
	FieldEventType = "event_type"
	// FieldErrorHint suggests the next step for the user.
	FieldErrorHint = "error_hint"
	// FieldImpact is the standardized key for user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldAlert flags warnings or anomalies that should stand out in structured logs.
	FieldAlert = "alert"
)
