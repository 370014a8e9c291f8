package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/firefly-engineering/projctl/internal/errors"
	"github.com/firefly-engineering/projctl/internal/project"
)

// Resolve maps a user-typed project reference to a key. It tries, in
// order: an exact key, an exact name, a unique key prefix, and finally the
// best fuzzy match on names.
func (s *Service) Resolve(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", errors.ValidationError("project reference cannot be empty")
	}

	coll, err := s.List(ctx)
	if err != nil {
		return "", err
	}
	return resolveIn(coll, query)
}

func resolveIn(coll project.Collection, query string) (string, error) {
	if _, ok := coll.Get(query); ok {
		return query, nil
	}

	var byName, byPrefix []string
	names := make([]string, 0, coll.Len())
	for _, key := range coll.Keys {
		rec := coll.ByKey[key]
		names = append(names, rec.Name)
		if rec.Name == query {
			byName = append(byName, key)
		}
		if strings.HasPrefix(key, query) {
			byPrefix = append(byPrefix, key)
		}
	}

	switch {
	case len(byName) == 1:
		return byName[0], nil
	case len(byName) > 1:
		return "", ambiguous(query, byName)
	case len(byPrefix) == 1:
		return byPrefix[0], nil
	case len(byPrefix) > 1:
		return "", ambiguous(query, byPrefix)
	}

	matches := fuzzy.Find(query, names)
	if len(matches) == 0 {
		return "", errors.ProjectNotFound(query)
	}
	return coll.Keys[matches[0].Index], nil
}

func ambiguous(query string, keys []string) error {
	return errors.ValidationError(fmt.Sprintf("%q matches %d projects (%s); use a key",
		query, len(keys), strings.Join(keys, ", ")))
}
