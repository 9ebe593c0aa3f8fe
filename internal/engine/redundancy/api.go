package redundancy

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"go.trai.ch/ikon/internal/core/domain"
	"go.trai.ch/ikon/internal/core/ports"
	"go.trai.ch/zerr"
)

const iconsQuery = ".json?icons="

// URLBudget returns the number of characters left for the icon list in a request for prefix.
func URLBudget(cfg domain.ProviderConfig, prefix string) int {
	host := 0
	for _, r := range cfg.Resources {
		host = max(host, len(r))
	}
	return cfg.MaxURL - host - len(cfg.Path) - len(prefix) - len(iconsQuery)
}

// Prepare splits names into batches whose URL fits the provider budget.
// Names keep their order. A batch always has at least one name, so a single
// name longer than the budget gets a batch of its own.
func Prepare(cfg domain.ProviderConfig, key domain.SetKey, names []string) []Batch {
	budget := URLBudget(cfg, key.Prefix)

	var (
		batches []Batch
		current []string
		length  int
	)
	for _, name := range names {
		escaped := len(url.QueryEscape(name))
		size := escaped
		if len(current) > 0 {
			size++
		}
		if len(current) > 0 && length+size > budget {
			batches = append(batches, Batch{Key: key, Names: current})
			current, length, size = nil, 0, escaped
		}
		current = append(current, name)
		length += size
	}
	if len(current) > 0 {
		batches = append(batches, Batch{Key: key, Names: current})
	}
	return batches
}

// BuildURL returns the request URL of batch on resource.
func BuildURL(resource, path string, batch Batch) string {
	escaped := make([]string, len(batch.Names))
	for i, name := range batch.Names {
		escaped[i] = url.QueryEscape(name)
	}
	return resource + path + batch.Key.Prefix + iconsQuery + strings.Join(escaped, ",")
}

// NewSender returns a SendFunc issuing API requests through transport.
func NewSender(transport ports.Transport, cfg domain.ProviderConfig) SendFunc {
	return func(ctx context.Context, resource string, batch Batch) Response {
		target := BuildURL(resource, cfg.Path, batch)

		resp, err := transport.Get(ctx, target)
		if err != nil {
			err = zerr.Wrap(err, domain.ErrRequestFailed.Error())
			return Response{Outcome: OutcomeNext, Err: zerr.With(err, "url", target)}
		}

		switch {
		case resp.Status == http.StatusNotFound:
			err := zerr.With(domain.ErrRequestFailed, "status_code", resp.Status)
			return Response{Outcome: OutcomeAbort, Err: zerr.With(err, "url", target)}
		case resp.Status != http.StatusOK:
			err := zerr.With(domain.ErrRequestFailed, "status_code", resp.Status)
			return Response{Outcome: OutcomeNext, Err: zerr.With(err, "url", target)}
		}

		// The API answers unknown prefixes with a bare "404" body.
		if strings.TrimSpace(string(resp.Body)) == "404" {
			err := zerr.With(domain.ErrRequestFailed, "status_code", http.StatusNotFound)
			return Response{Outcome: OutcomeAbort, Err: zerr.With(err, "url", target)}
		}

		data, err := domain.DecodeIconSet(resp.Body)
		if err != nil {
			err = zerr.Wrap(err, domain.ErrResponseParseFailed.Error())
			return Response{Outcome: OutcomeNext, Err: zerr.With(err, "url", target)}
		}
		if data.Prefix != batch.Key.Prefix {
			err := zerr.With(domain.ErrResponseParseFailed, "prefix", data.Prefix)
			return Response{Outcome: OutcomeNext, Err: zerr.With(err, "url", target)}
		}
		// The response fills the store that was queried.
		data.Provider = batch.Key.Provider
		return Response{Outcome: OutcomeSuccess, Data: data}
	}
}
