package core

import (
	"context"
	"fmt"
	"io"
	"path"

	"chemcore/internal/blob"
)

// SDSDocumentStore is the blob backend holding captured SDS documents.
type SDSDocumentStore = blob.Store

func sdsKey(recordID, filename string) string {
	return path.Join("sds", recordID, filename)
}

// AttachSDSDocument stores a captured SDS document for a record. The record
// must exist; the blob key is derived from the record identifier and file
// name, so re-attaching the same name fails per blob Put semantics.
func (s *Service) AttachSDSDocument(ctx context.Context, recordID, filename string, r io.Reader, contentType string) (blob.Info, error) {
	ctx, done := s.observe(ctx, "attach_sds_document")
	info, err := s.attachSDSDocument(ctx, recordID, filename, r, contentType)
	done(Result{}, err)
	return info, err
}

func (s *Service) attachSDSDocument(ctx context.Context, recordID, filename string, r io.Reader, contentType string) (blob.Info, error) {
	if s.documents == nil {
		return blob.Info{}, fmt.Errorf("no sds document store configured")
	}
	if filename == "" {
		return blob.Info{}, fmt.Errorf("filename is required")
	}
	record, ok := s.store.GetChemical(recordID)
	if !ok {
		return blob.Info{}, fmt.Errorf("chemical %s not found", recordID)
	}
	return s.documents.Put(ctx, sdsKey(record.ID, filename), r, blob.PutOptions{
		ContentType: contentType,
		Metadata:    map[string]string{"chemical_id": record.ID, "chemical_name": record.Name},
	})
}

// ListSDSDocuments returns metadata for all documents attached to a record,
// ordered by key.
func (s *Service) ListSDSDocuments(ctx context.Context, recordID string) ([]blob.Info, error) {
	if s.documents == nil {
		return nil, nil
	}
	return s.documents.List(ctx, sdsKey(recordID, ""))
}

// SDSDocumentURL returns a time-limited URL for the first document attached
// to a record, or "" when none is stored. Backends without pre-signing
// support report blob.ErrUnsupported.
func (s *Service) SDSDocumentURL(ctx context.Context, recordID string) (string, error) {
	if s.documents == nil {
		return "", nil
	}
	infos, err := s.documents.List(ctx, sdsKey(recordID, ""))
	if err != nil {
		return "", err
	}
	if len(infos) == 0 {
		return "", nil
	}
	return s.documents.PresignURL(ctx, infos[0].Key, blob.SignedURLOptions{Method: "GET"})
}
