package service

import (
	"context"
	"fmt"

	"rawstore/internal/model"
	"rawstore/internal/objectpath"
	"rawstore/internal/storage"
)

// Declared MIME type used when a file does not carry one.
const defaultContentType = "text/plain"

// Authorize runs the upload-authorization gates in order; the first failing
// gate wins and no partial grant set is ever returned.
func (s *authService) Authorize(ctx context.Context, token string, req *model.UploadRequest) (*model.AuthorizeResult, error) {
	// Gate 1: the payload must name an owner and carry a file mapping.
	if req == nil || req.Metadata.Owner == "" || req.Filedata == nil {
		return nil, ErrBadRequest
	}
	owner := req.Metadata.Owner

	// Gate 2: the caller must be the owner it claims to upload for.
	id := s.verifier.ExtractIdentity(token)
	if id == nil || id.UserID != owner {
		return nil, ErrUnauthorized
	}

	// Gate 3: resolve visibility class and its entitlement limit. An absent
	// entitlement means zero quota.
	visibility := req.Metadata.Visibility()
	acl := model.ACLPublicRead
	if visibility == model.VisibilityPrivate {
		acl = model.ACLPrivate
	}
	limitMB := id.StorageLimitMB(visibility)

	// Gate 4: quota. Strictly greater-than: landing exactly on the limit is
	// accepted. Limits are decimal megabytes.
	var requested int64
	for path, file := range req.Filedata {
		if file.MD5 == "" || file.Length < 0 {
			return nil, fmt.Errorf("%w: file %q missing content digest or length", ErrBadRequest, path)
		}
		requested += file.Length
	}
	current, err := s.registry.TotalBytes(ctx, owner, visibility)
	if err != nil {
		logInternal("authorize", err)
		return nil, ErrBadRequest
	}
	if float64(current)+float64(requested) > limitMB*1_000_000 {
		return nil, &QuotaError{Visibility: visibility, LimitMB: limitMB}
	}

	// Gate 5: per file, render the object key, probe for an existing object
	// (advisory only: the caller can warn about overwrite) and request the
	// signing credential with the ACL baked into the signed conditions.
	grants := make(map[string]model.UploadGrant, len(req.Filedata))
	for path, file := range req.Filedata {
		params := objectpath.BuildParams(file, owner, req.Metadata.Dataset, path)
		key, err := objectpath.Format(s.cfg.Storage.PathPattern, params)
		if err != nil {
			// A pattern variable missing from the file info fails the whole
			// request as a client error, never a 500-class fault.
			return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
		}

		exists, err := s.store.ObjectExists(ctx, key)
		if err != nil {
			logInternal("authorize", err)
			return nil, ErrBadRequest
		}

		contentType := file.Type
		if contentType == "" {
			contentType = defaultContentType
		}
		cred, err := s.store.SignUpload(ctx, key, storage.SignUploadOptions{
			ContentMD5:  file.MD5,
			ContentType: contentType,
			Length:      file.Length,
			ACL:         acl,
		})
		if err != nil {
			logInternal("authorize", err)
			return nil, ErrBadRequest
		}

		grant := model.UploadGrant{
			UploadURL:   cred.URL,
			UploadQuery: cred.FormData,
			Exists:      exists,
		}
		if file.Type != "" {
			grant.Type = file.Type
		}
		grants[path] = grant
	}

	return &model.AuthorizeResult{Filedata: grants}, nil
}
