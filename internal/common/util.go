package common

import (
	"errors"
	"net/url"
)

// ParseEvidenceURL accepts only absolute http or https URLs.
func ParseEvidenceURL(rawURL string) (*url.URL, error) {
	u, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return nil, err
	}

	if u.Scheme != "https" && u.Scheme != "http" {
		return nil, errors.New("invalid scheme")
	}

	if u.Host == "" {
		return nil, errors.New("empty host")
	}

	return u, nil
}
