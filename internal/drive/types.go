package drive

import "time"

// FileInfo represents metadata about a file or folder in Google Drive.
type FileInfo struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	MimeType       string       `json:"mimeType"`
	Size           int64        `json:"size,omitempty"`
	CreatedTime    time.Time    `json:"createdTime,omitzero"`
	ModifiedTime   time.Time    `json:"modifiedTime,omitzero"`
	WebViewLink    string       `json:"webViewLink,omitempty"`
	WebContentLink string       `json:"webContentLink,omitempty"`
	Parents        []string     `json:"parents,omitempty"`
	Owners         []User       `json:"owners,omitempty"`
	Shared         bool         `json:"shared"`
	Trashed        bool         `json:"trashed"`
	Permissions    []Permission `json:"permissions,omitempty"`
}

// User represents a Drive user (owner, permission holder, account holder).
type User struct {
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress"`
	PhotoLink    string `json:"photoLink,omitempty"`
}

// Permission represents an access grant on a file.
type Permission struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Role         string `json:"role"`
	EmailAddress string `json:"emailAddress,omitempty"`
	Domain       string `json:"domain,omitempty"`
	DisplayName  string `json:"displayName,omitempty"`
}

// ListOptions selects the filter clauses for a listing. Each set field adds
// exactly one clause; all clauses are combined with AND.
type ListOptions struct {
	// FolderID restricts results to direct children of the folder.
	FolderID string

	// NameContains restricts results to files whose name contains the
	// substring.
	NameContains string

	// FullText restricts results to files whose indexed content matches.
	FullText string

	// Owner restricts results to files owned by the given email address.
	Owner string

	// MaxResults is the single page size requested (max 1000).
	MaxResults int

	// OrderBy specifies the sort order, e.g. "folder,modifiedTime desc,name".
	OrderBy string

	// PageToken retrieves the next page of a previous listing.
	PageToken string
}

// UploadOptions contains options for creating a file with content.
type UploadOptions struct {
	ParentFolders []string
	Description   string
	MimeType      string
}

// MoveOptions contains options for moving or reparenting a file. When
// RemoveParents is empty the file's current parents are read and removed, so
// a move never silently leaves duplicate parent references.
type MoveOptions struct {
	AddParents    []string
	RemoveParents []string
}

// ShareOptions contains options for granting access to a file.
type ShareOptions struct {
	// Type is the grantee type: user, group, domain or anyone.
	Type string

	// Role is the granted role: reader, commenter, writer, fileOrganizer,
	// organizer or owner.
	Role string

	// EmailAddress is required when Type is user or group.
	EmailAddress string

	// Domain is required when Type is domain.
	Domain string

	SendNotificationEmail bool
	EmailMessage          string
}

// DownloadResult carries downloaded file content. Exported is set when the
// file was a native workspace document converted on the way out.
type DownloadResult struct {
	Name           string `json:"name"`
	MimeType       string `json:"mimeType"`
	Content        []byte `json:"-"`
	Exported       bool   `json:"exported"`
	ExportMimeType string `json:"exportMimeType,omitempty"`
}

// Comment represents a comment thread anchor on a file.
type Comment struct {
	ID           string    `json:"id"`
	Content      string    `json:"content"`
	Author       User      `json:"author"`
	CreatedTime  time.Time `json:"createdTime,omitzero"`
	ModifiedTime time.Time `json:"modifiedTime,omitzero"`
	Resolved     bool      `json:"resolved"`
}

// Revision represents a stored revision of a file.
type Revision struct {
	ID                string    `json:"id"`
	MimeType          string    `json:"mimeType"`
	ModifiedTime      time.Time `json:"modifiedTime,omitzero"`
	Size              int64     `json:"size,omitempty"`
	KeepForever       bool      `json:"keepForever"`
	LastModifyingUser User      `json:"lastModifyingUser,omitzero"`
}

// StorageQuota describes the account's storage numbers, in bytes.
type StorageQuota struct {
	Limit             int64 `json:"limit,omitempty"`
	Usage             int64 `json:"usage"`
	UsageInDrive      int64 `json:"usageInDrive"`
	UsageInDriveTrash int64 `json:"usageInDriveTrash"`
}

// AccountInfo is the projection of the Drive about endpoint.
type AccountInfo struct {
	User         User         `json:"user"`
	StorageQuota StorageQuota `json:"storageQuota"`
}
