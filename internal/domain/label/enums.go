package label

// Field identifies one of the four form inputs
type Field string

const (
	FieldPartNumber Field = "part_number"
	FieldQuantity   Field = "quantity"
	FieldDivision   Field = "division"
	FieldTrackingID Field = "tracking_id"
)

// IsValid checks if the Field is a valid value
func (f Field) IsValid() bool {
	switch f {
	case FieldPartNumber, FieldQuantity, FieldDivision, FieldTrackingID:
		return true
	}
	return false
}

// String returns the string representation of Field
func (f Field) String() string {
	return string(f)
}

// DisplayName returns the label shown next to the input
func (f Field) DisplayName() string {
	switch f {
	case FieldPartNumber:
		return "Part Number"
	case FieldQuantity:
		return "Quantity"
	case FieldDivision:
		return "Division"
	case FieldTrackingID:
		return "TAB No"
	default:
		return string(f)
	}
}

// AllFields returns the form fields in display order
func AllFields() []Field {
	return []Field{FieldPartNumber, FieldQuantity, FieldDivision, FieldTrackingID}
}

// JobStatus represents the status of a label job
type JobStatus string

const (
	JobStatusPending   JobStatus = "PENDING"
	JobStatusRendering JobStatus = "RENDERING"
	JobStatusRendered  JobStatus = "RENDERED"
	JobStatusPrinting  JobStatus = "PRINTING"
	JobStatusPrinted   JobStatus = "PRINTED"
	JobStatusFailed    JobStatus = "FAILED"
)

// IsValid checks if the JobStatus is a valid value
func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusPending, JobStatusRendering, JobStatusRendered,
		JobStatusPrinting, JobStatusPrinted, JobStatusFailed:
		return true
	}
	return false
}

// String returns the string representation of JobStatus
func (s JobStatus) String() string {
	return string(s)
}

// IsTerminal returns true if no further transitions are possible.
// RENDERED is not terminal: it may still move on to PRINTING.
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusPrinted || s == JobStatusFailed
}

// CanTransitionTo checks if the status can transition to the target status
func (s JobStatus) CanTransitionTo(target JobStatus) bool {
	switch s {
	case JobStatusPending:
		return target == JobStatusRendering || target == JobStatusFailed
	case JobStatusRendering:
		return target == JobStatusRendered || target == JobStatusFailed
	case JobStatusRendered:
		return target == JobStatusPrinting
	case JobStatusPrinting:
		return target == JobStatusPrinted || target == JobStatusFailed
	case JobStatusPrinted, JobStatusFailed:
		return false
	}
	return false
}
