package site

type CreateSiteRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Code     string `json:"code" binding:"required,max=20"`
	Location string `json:"location" binding:"max=255"`
}

type SiteResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Location string `json:"location,omitempty"`
	Active   bool   `json:"active"`
}
