package drive

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/workweave/workspace-mcp/internal/auth"
)

const fileInfoFields = "id, name, mimeType, size, createdTime, modifiedTime, webViewLink, webContentLink, parents, owners, shared, trashed"

// ValidShareRoles are the roles accepted by ShareFile.
var ValidShareRoles = []string{"reader", "commenter", "writer", "fileOrganizer", "organizer", "owner"}

// ValidShareTypes are the grantee types accepted by ShareFile.
var ValidShareTypes = []string{"user", "group", "domain", "anyone"}

// Client wraps the Google Drive API service.
type Client struct {
	service *drive.Service
	logger  *slog.Logger

	// maxFileSize caps the content size accepted by download operations.
	maxFileSize int64
}

// NewClient creates a Drive client authenticated through the given
// credential provider. maxFileSize bounds download payloads; zero or
// negative disables the bound.
func NewClient(ctx context.Context, provider auth.Provider, maxFileSize int64, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	service, err := drive.NewService(ctx, option.WithTokenSource(auth.TokenSource(ctx, provider)))
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}

	return &Client{service: service, logger: logger, maxFileSize: maxFileSize}, nil
}

// ListFiles lists files matching the given filter options. It requests a
// single page and returns the token for the next one; it never loops.
func (c *Client) ListFiles(ctx context.Context, opts *ListOptions) ([]*FileInfo, string, error) {
	call := c.service.Files.List().
		Context(ctx).
		Q(BuildListQuery(opts)).
		Fields(googleapi.Field("nextPageToken, files(" + fileInfoFields + ")"))

	if opts != nil {
		if opts.MaxResults > 0 {
			call = call.PageSize(int64(opts.MaxResults))
		}
		if opts.OrderBy != "" {
			call = call.OrderBy(opts.OrderBy)
		}
		if opts.PageToken != "" {
			call = call.PageToken(opts.PageToken)
		}
	}

	fileList, err := call.Do()
	if err != nil {
		return nil, "", fmt.Errorf("failed to list files: %w", err)
	}

	files := make([]*FileInfo, len(fileList.Files))
	for i, f := range fileList.Files {
		files[i] = convertToFileInfo(f)
	}

	return files, fileList.NextPageToken, nil
}

// GetFile retrieves metadata for a single file.
func (c *Client) GetFile(ctx context.Context, fileID string) (*FileInfo, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}

	file, err := c.service.Files.Get(fileID).
		Context(ctx).
		Fields(googleapi.Field(fileInfoFields + ", permissions")).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get file %s: %w", fileID, err)
	}

	return convertToFileInfo(file), nil
}

// DownloadFile fetches the content of a file. Native workspace documents
// are exported — to exportMime when given, else to the default format for
// their type — while regular files are fetched byte for byte.
func (c *Client) DownloadFile(ctx context.Context, fileID, exportMime string) (*DownloadResult, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}

	meta, err := c.service.Files.Get(fileID).
		Context(ctx).
		Fields("id, name, mimeType, size").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get file %s: %w", fileID, err)
	}
	if c.maxFileSize > 0 && meta.Size > c.maxFileSize {
		return nil, fmt.Errorf("file %s is %d bytes, larger than the configured maximum of %d", fileID, meta.Size, c.maxFileSize)
	}

	result := &DownloadResult{Name: meta.Name, MimeType: meta.MimeType}

	var resp *http.Response
	if IsWorkspaceMime(meta.MimeType) {
		if exportMime == "" {
			exportMime = DefaultExportMime(meta.MimeType)
		}
		result.Exported = true
		result.ExportMimeType = exportMime

		resp, err = c.service.Files.Export(fileID, exportMime).Context(ctx).Download()
		if err != nil {
			return nil, fmt.Errorf("failed to export file %s as %s: %w", fileID, exportMime, err)
		}
	} else {
		resp, err = c.service.Files.Get(fileID).Context(ctx).Download()
		if err != nil {
			return nil, fmt.Errorf("failed to download file %s: %w", fileID, err)
		}
	}
	defer resp.Body.Close()

	content, err := c.readBounded(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read content of file %s: %w", fileID, err)
	}
	result.Content = content

	return result, nil
}

// readBounded reads the whole body, failing when it exceeds the configured
// maximum. Exports report no size up front, so the bound is enforced while
// reading.
func (c *Client) readBounded(r io.Reader) ([]byte, error) {
	if c.maxFileSize <= 0 {
		return io.ReadAll(r)
	}

	content, err := io.ReadAll(io.LimitReader(r, c.maxFileSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(content)) > c.maxFileSize {
		return nil, fmt.Errorf("content exceeds the configured maximum of %d bytes", c.maxFileSize)
	}
	return content, nil
}

// UploadFile creates a file with the given content.
func (c *Client) UploadFile(ctx context.Context, name string, content io.Reader, opts *UploadOptions) (*FileInfo, error) {
	if name == "" {
		return nil, fmt.Errorf("file name is required")
	}
	if content == nil {
		return nil, fmt.Errorf("file content is required")
	}

	file := &drive.File{Name: name}
	if opts != nil {
		file.Parents = opts.ParentFolders
		file.Description = opts.Description
		file.MimeType = opts.MimeType
	}

	created, err := c.service.Files.Create(file).
		Context(ctx).
		Media(content, googleapi.ContentType(file.MimeType)).
		Fields(fileInfoFields).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	return convertToFileInfo(created), nil
}

// UpdateFile replaces the content of an existing file.
func (c *Client) UpdateFile(ctx context.Context, fileID string, content io.Reader, mimeType string) (*FileInfo, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}
	if content == nil {
		return nil, fmt.Errorf("file content is required")
	}

	updated, err := c.service.Files.Update(fileID, &drive.File{}).
		Context(ctx).
		Media(content, googleapi.ContentType(mimeType)).
		Fields(fileInfoFields).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to update file %s: %w", fileID, err)
	}

	return convertToFileInfo(updated), nil
}

// CopyFile copies a file, optionally under a new name.
func (c *Client) CopyFile(ctx context.Context, fileID, newName string) (*FileInfo, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}

	copied, err := c.service.Files.Copy(fileID, &drive.File{Name: newName}).
		Context(ctx).
		Fields(fileInfoFields).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to copy file %s: %w", fileID, err)
	}

	return convertToFileInfo(copied), nil
}

// RenameFile renames a file in place.
func (c *Client) RenameFile(ctx context.Context, fileID, newName string) (*FileInfo, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}
	if newName == "" {
		return nil, fmt.Errorf("newName is required")
	}

	renamed, err := c.service.Files.Update(fileID, &drive.File{Name: newName}).
		Context(ctx).
		Fields(fileInfoFields).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to rename file %s: %w", fileID, err)
	}

	return convertToFileInfo(renamed), nil
}

// MoveFile reparents a file. When no removal list is given, the file's
// current parent set is read first and removed wholesale, so the move never
// leaves duplicate parent references behind.
func (c *Client) MoveFile(ctx context.Context, fileID string, opts *MoveOptions) (*FileInfo, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}
	if opts == nil || len(opts.AddParents) == 0 {
		return nil, fmt.Errorf("at least one destination folder is required")
	}

	removeParents := opts.RemoveParents
	if len(removeParents) == 0 {
		current, err := c.service.Files.Get(fileID).
			Context(ctx).
			Fields("parents").
			Do()
		if err != nil {
			return nil, fmt.Errorf("failed to read current parents of file %s: %w", fileID, err)
		}
		removeParents = current.Parents
	}

	call := c.service.Files.Update(fileID, &drive.File{}).
		Context(ctx).
		AddParents(strings.Join(opts.AddParents, ",")).
		Fields(fileInfoFields)
	if len(removeParents) > 0 {
		call = call.RemoveParents(strings.Join(removeParents, ","))
	}

	moved, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to move file %s: %w", fileID, err)
	}

	return convertToFileInfo(moved), nil
}

// DeleteFile removes a file. The default is reversible trash placement;
// permanent deletion must be requested explicitly.
func (c *Client) DeleteFile(ctx context.Context, fileID string, permanent bool) error {
	if fileID == "" {
		return fmt.Errorf("fileID is required")
	}

	if permanent {
		if err := c.service.Files.Delete(fileID).Context(ctx).Do(); err != nil {
			return fmt.Errorf("failed to permanently delete file %s: %w", fileID, err)
		}
		return nil
	}

	_, err := c.service.Files.Update(fileID, &drive.File{Trashed: true}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to trash file %s: %w", fileID, err)
	}
	return nil
}

// CreateFolder creates a folder, optionally under the given parents.
func (c *Client) CreateFolder(ctx context.Context, name string, parentFolders []string) (*FileInfo, error) {
	if name == "" {
		return nil, fmt.Errorf("folder name is required")
	}

	created, err := c.service.Files.Create(&drive.File{
		Name:     name,
		MimeType: FolderMimeType,
		Parents:  parentFolders,
	}).
		Context(ctx).
		Fields(fileInfoFields).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}

	return convertToFileInfo(created), nil
}

// ShareFile creates a permission on a file.
func (c *Client) ShareFile(ctx context.Context, fileID string, opts *ShareOptions) (*Permission, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}
	if opts == nil {
		return nil, fmt.Errorf("share options are required")
	}
	if !contains(ValidShareTypes, opts.Type) {
		return nil, fmt.Errorf("invalid permission type %q (one of: %s)", opts.Type, strings.Join(ValidShareTypes, ", "))
	}
	if !contains(ValidShareRoles, opts.Role) {
		return nil, fmt.Errorf("invalid permission role %q (one of: %s)", opts.Role, strings.Join(ValidShareRoles, ", "))
	}

	permission := &drive.Permission{
		Type:         opts.Type,
		Role:         opts.Role,
		EmailAddress: opts.EmailAddress,
		Domain:       opts.Domain,
	}

	call := c.service.Permissions.Create(fileID, permission).
		Context(ctx).
		Fields("id, type, role, emailAddress, domain, displayName")
	if opts.SendNotificationEmail {
		call = call.SendNotificationEmail(true)
		if opts.EmailMessage != "" {
			call = call.EmailMessage(opts.EmailMessage)
		}
	}

	created, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to share file %s: %w", fileID, err)
	}

	return convertToPermission(created), nil
}

// ListPermissions lists all permissions on a file.
func (c *Client) ListPermissions(ctx context.Context, fileID string) ([]*Permission, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}

	permList, err := c.service.Permissions.List(fileID).
		Context(ctx).
		Fields("permissions(id, type, role, emailAddress, domain, displayName)").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions on file %s: %w", fileID, err)
	}

	permissions := make([]*Permission, len(permList.Permissions))
	for i, p := range permList.Permissions {
		permissions[i] = convertToPermission(p)
	}

	return permissions, nil
}

// RemovePermission removes a permission from a file.
func (c *Client) RemovePermission(ctx context.Context, fileID, permissionID string) error {
	if fileID == "" {
		return fmt.Errorf("fileID is required")
	}
	if permissionID == "" {
		return fmt.Errorf("permissionID is required")
	}

	if err := c.service.Permissions.Delete(fileID, permissionID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to remove permission %s from file %s: %w", permissionID, fileID, err)
	}

	return nil
}

// ListComments lists the comments on a file.
func (c *Client) ListComments(ctx context.Context, fileID string) ([]*Comment, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}

	commentList, err := c.service.Comments.List(fileID).
		Context(ctx).
		Fields("comments(id, content, author, createdTime, modifiedTime, resolved)").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list comments on file %s: %w", fileID, err)
	}

	comments := make([]*Comment, len(commentList.Comments))
	for i, cm := range commentList.Comments {
		comments[i] = convertToComment(cm)
	}

	return comments, nil
}

// CreateComment adds a comment to a file.
func (c *Client) CreateComment(ctx context.Context, fileID, content string) (*Comment, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}
	if content == "" {
		return nil, fmt.Errorf("comment content is required")
	}

	created, err := c.service.Comments.Create(fileID, &drive.Comment{Content: content}).
		Context(ctx).
		Fields("id, content, author, createdTime, modifiedTime, resolved").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create comment on file %s: %w", fileID, err)
	}

	return convertToComment(created), nil
}

// ListRevisions lists the stored revisions of a file.
func (c *Client) ListRevisions(ctx context.Context, fileID string) ([]*Revision, error) {
	if fileID == "" {
		return nil, fmt.Errorf("fileID is required")
	}

	revisionList, err := c.service.Revisions.List(fileID).
		Context(ctx).
		Fields("revisions(id, mimeType, modifiedTime, size, keepForever, lastModifyingUser)").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list revisions of file %s: %w", fileID, err)
	}

	revisions := make([]*Revision, len(revisionList.Revisions))
	for i, r := range revisionList.Revisions {
		revisions[i] = convertToRevision(r)
	}

	return revisions, nil
}

// About returns the authenticated account and its storage quota.
func (c *Client) About(ctx context.Context) (*AccountInfo, error) {
	about, err := c.service.About.Get().
		Context(ctx).
		Fields("user, storageQuota").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get account info: %w", err)
	}

	info := &AccountInfo{}
	if about.User != nil {
		info.User = convertToUser(about.User)
	}
	if about.StorageQuota != nil {
		info.StorageQuota = StorageQuota{
			Limit:             about.StorageQuota.Limit,
			Usage:             about.StorageQuota.Usage,
			UsageInDrive:      about.StorageQuota.UsageInDrive,
			UsageInDriveTrash: about.StorageQuota.UsageInDriveTrash,
		}
	}

	return info, nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// convertToFileInfo projects a Drive API File into our FileInfo type.
func convertToFileInfo(f *drive.File) *FileInfo {
	info := &FileInfo{
		ID:             f.Id,
		Name:           f.Name,
		MimeType:       f.MimeType,
		Size:           f.Size,
		WebViewLink:    f.WebViewLink,
		WebContentLink: f.WebContentLink,
		Parents:        f.Parents,
		Shared:         f.Shared,
		Trashed:        f.Trashed,
	}

	if f.CreatedTime != "" {
		if t, err := time.Parse(time.RFC3339, f.CreatedTime); err == nil {
			info.CreatedTime = t
		}
	}
	if f.ModifiedTime != "" {
		if t, err := time.Parse(time.RFC3339, f.ModifiedTime); err == nil {
			info.ModifiedTime = t
		}
	}

	for _, owner := range f.Owners {
		info.Owners = append(info.Owners, convertToUser(owner))
	}
	for _, perm := range f.Permissions {
		info.Permissions = append(info.Permissions, *convertToPermission(perm))
	}

	return info
}

func convertToUser(u *drive.User) User {
	if u == nil {
		return User{}
	}
	return User{
		DisplayName:  u.DisplayName,
		EmailAddress: u.EmailAddress,
		PhotoLink:    u.PhotoLink,
	}
}

func convertToPermission(p *drive.Permission) *Permission {
	return &Permission{
		ID:           p.Id,
		Type:         p.Type,
		Role:         p.Role,
		EmailAddress: p.EmailAddress,
		Domain:       p.Domain,
		DisplayName:  p.DisplayName,
	}
}

func convertToComment(cm *drive.Comment) *Comment {
	comment := &Comment{
		ID:       cm.Id,
		Content:  cm.Content,
		Resolved: cm.Resolved,
	}
	if cm.Author != nil {
		comment.Author = User{
			DisplayName: cm.Author.DisplayName,
			PhotoLink:   cm.Author.PhotoLink,
		}
	}
	if t, err := time.Parse(time.RFC3339, cm.CreatedTime); err == nil {
		comment.CreatedTime = t
	}
	if t, err := time.Parse(time.RFC3339, cm.ModifiedTime); err == nil {
		comment.ModifiedTime = t
	}
	return comment
}

func convertToRevision(r *drive.Revision) *Revision {
	revision := &Revision{
		ID:          r.Id,
		MimeType:    r.MimeType,
		Size:        r.Size,
		KeepForever: r.KeepForever,
	}
	if t, err := time.Parse(time.RFC3339, r.ModifiedTime); err == nil {
		revision.ModifiedTime = t
	}
	if r.LastModifyingUser != nil {
		revision.LastModifyingUser = convertToUser(r.LastModifyingUser)
	}
	return revision
}
