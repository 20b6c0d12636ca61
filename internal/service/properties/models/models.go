package models

// CityInfo информация о городе с объектами размещения
type CityInfo struct {
	City     string `json:"city"`
	State    string `json:"state,omitempty"`
	Country  string `json:"country,omitempty"`
	CityIcon string `json:"cityIcon,omitempty"`
}

// CityListResponse список уникальных городов
type CityListResponse struct {
	Cities []CityInfo `json:"cities"`
	Total  int        `json:"total"`
}
