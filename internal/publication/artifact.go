package publication

// ArtifactType distinguishes files from links and tracks file approval.
type ArtifactType string

const (
	ArtifactPublishedFile  ArtifactType = "PublishedFile"
	ArtifactPendingFile    ArtifactType = "PendingOpenFile"
	ArtifactInternalFile   ArtifactType = "InternalFile"
	ArtifactLink           ArtifactType = "AssociatedLink"
	ArtifactNullAssociated ArtifactType = "NullAssociatedArtifact"
)

// Artifact is a file or link associated with a publication.
type Artifact struct {
	Identifier string       `json:"identifier,omitempty"`
	Type       ArtifactType `json:"type"`
	Name       string       `json:"name,omitempty"`
	MimeType   string       `json:"mime_type,omitempty"`
	Size       int64        `json:"size,omitempty"`
	License    string       `json:"license,omitempty"`
	URL        string       `json:"url,omitempty"`        // for links
	LocalPath  string       `json:"local_path,omitempty"` // relative to the configured PDF root
}

// IsPublished reports whether the artifact has been approved and published.
// Published artifacts are never removed or replaced by an import.
func (a Artifact) IsPublished() bool {
	return a.Type == ArtifactPublishedFile
}

// Key identifies an artifact across imports: identifier when set,
// otherwise URL for links and name for files.
func (a Artifact) Key() string {
	switch {
	case a.Identifier != "":
		return "id:" + a.Identifier
	case a.Type == ArtifactLink:
		return "url:" + a.URL
	default:
		return "name:" + a.Name
	}
}
