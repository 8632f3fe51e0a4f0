package model

// UploadRequest is the body of an upload-authorization call: who wants to
// upload, into which dataset, and the set of files keyed by relative path.
type UploadRequest struct {
	Metadata Metadata                  `json:"metadata"`
	Filedata map[string]FileDescriptor `json:"filedata"`
}

// Metadata describes the dataset an upload request targets.
type Metadata struct {
	Owner       string `json:"owner"`
	Dataset     string `json:"dataset"`
	Findability string `json:"findability,omitempty"`
}

// Visibility resolves the request's visibility class: "private" only when the
// findability flag says so, everything else is public.
func (m Metadata) Visibility() Visibility {
	if m.Findability == string(VisibilityPrivate) {
		return VisibilityPrivate
	}
	return VisibilityPublic
}

// FileDescriptor describes a single file the client intends to upload.
// MD5 is the base64-encoded 128-bit content digest, Length the exact size in
// bytes. Both are mandatory for authorization and quota accounting.
type FileDescriptor struct {
	Name   string `json:"name,omitempty"`
	MD5    string `json:"md5"`
	Length int64  `json:"length"`
	Type   string `json:"type,omitempty"`
}

// UploadGrant is the per-file result of a successful authorization: a
// pre-signed POST target plus the form fields the client must include.
// Exists warns that an object already occupies the target key.
type UploadGrant struct {
	UploadURL   string            `json:"upload_url"`
	UploadQuery map[string]string `json:"upload_query"`
	Type        string            `json:"type,omitempty"`
	Exists      bool              `json:"exists"`
}

// AuthorizeResult aggregates grants per relative path. Either every file in
// the request is granted or the request as a whole fails.
type AuthorizeResult struct {
	Filedata map[string]UploadGrant `json:"filedata"`
}

// InfoResult lists the storage URL prefixes owned by the authenticated user.
type InfoResult struct {
	Prefixes []string `json:"prefixes"`
}
