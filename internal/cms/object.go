package cms

// Object is a generic content object stored in the bucket. Resource-specific
// fields (contact type, deal stage, employee department, ...) live in Metadata.
type Object struct {
	ID         string                 `json:"id"`
	Slug       string                 `json:"slug,omitempty"`
	Title      string                 `json:"title"`
	Type       string                 `json:"type"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt  string                 `json:"created_at,omitempty"`
	ModifiedAt string                 `json:"modified_at,omitempty"`
}

// ObjectDraft is the payload for creating a content object.
type ObjectDraft struct {
	Title    string                 `json:"title"`
	Type     string                 `json:"type"`
	Slug     string                 `json:"slug,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// ObjectPatch is the payload for a partial update. Nil fields are left untouched.
type ObjectPatch struct {
	Title    string                 `json:"title,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Query describes a list request against the bucket.
type Query struct {
	Type string
	// Metadata holds equality filters applied server-side as metadata[key]=value.
	Metadata map[string]string
	Limit    int
	Skip     int
}

type listResponse struct {
	Objects []Object `json:"objects"`
	Total   int      `json:"total"`
}

type objectResponse struct {
	Object *Object `json:"object"`
}
