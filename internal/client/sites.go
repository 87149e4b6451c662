package client

import (
	"context"
	"net/http"
)

type Site struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Location string `json:"location"`
	Active   bool   `json:"active"`
}

// Label is the text shown for the site in lists.
func (s Site) Label() string {
	if s.Code == "" {
		return s.Name
	}
	return s.Name + " (" + s.Code + ")"
}

type SiteService struct {
	c *Client
}

func (s *SiteService) List(ctx context.Context) ([]Site, error) {
	var sites []Site
	if _, err := s.c.do(ctx, "list sites", http.MethodGet, "/sites", nil, nil, &sites); err != nil {
		return nil, err
	}
	return sites, nil
}
