package model

type ExportStatus string

const (
	// ExportStatusExported means the document was written to Path.
	ExportStatusExported ExportStatus = "exported"
	// ExportStatusCancelled means no destination was supplied; nothing was
	// written and nothing should be shown to the user.
	ExportStatusCancelled ExportStatus = "cancelled"
	// ExportStatusNoData means the patient has no visit history to export.
	// The interface shows an informational message, not an error.
	ExportStatusNoData ExportStatus = "no_data"
)

// ExportResult is the tagged outcome of an export. The three non-error
// outcomes are deliberately distinct values rather than error sentinels so
// the interface layer can render each its own way.
type ExportResult struct {
	Status ExportStatus `json:"status"`
	Path   string       `json:"path,omitempty"`
}

type ExportRequest struct {
	// Destination is the path chosen in the save dialog. Empty means the
	// user cancelled the dialog.
	Destination string `json:"destination"`
}
