package core

import (
	"context"
	"errors"
	"net/url"
)

// LinkOpener opens a URL in the host environment's default handler. The call
// is fire-and-forget: implementations should not retry or inspect content.
type LinkOpener func(ctx context.Context, url string) error

// ErrSDSSourceUnavailable is the single user-visible failure for SDS link
// opening. Missing records, absent URLs, malformed URLs, and handler errors
// all collapse into it.
var ErrSDSSourceUnavailable = errors.New("sds source unavailable")

// OpenSDSSource resolves the SDS link for a record and fires the injected
// opener. A captured document takes precedence over the external source URL.
func (s *Service) OpenSDSSource(ctx context.Context, id string) error {
	ctx, done := s.observe(ctx, "open_sds_source")
	err := s.openSDSSource(ctx, id)
	done(Result{}, err)
	return err
}

func (s *Service) openSDSSource(ctx context.Context, id string) error {
	if s.linkOpener == nil {
		return ErrSDSSourceUnavailable
	}
	record, ok := s.store.GetChemical(id)
	if !ok {
		return ErrSDSSourceUnavailable
	}

	target := record.SDS.SourceURL
	if s.documents != nil {
		if signed, err := s.SDSDocumentURL(ctx, id); err == nil && signed != "" {
			target = signed
		}
	}
	if target == "" {
		return ErrSDSSourceUnavailable
	}
	parsed, err := url.ParseRequestURI(target)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return ErrSDSSourceUnavailable
	}
	if err := s.linkOpener(ctx, target); err != nil {
		return ErrSDSSourceUnavailable
	}
	return nil
}
