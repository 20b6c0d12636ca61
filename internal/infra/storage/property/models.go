package property

import (
	"encoding/json"

	"github.com/zomesstay/ZS-SearchService/internal/domain"
)

// locationPayload форма location JSONB, как её пишут CRUD-контроллеры:
// город вложен в address, иконка города лежит на верхнем уровне
type locationPayload struct {
	Address struct {
		City    string `json:"city"`
		State   string `json:"state"`
		Country string `json:"country"`
	} `json:"address"`
	CityIcon string `json:"cityIcon"`
}

// decodeLocation разбирает JSONB location; пустые и битые значения
// превращаются в пустую локацию, а не в ошибку - поиск не должен падать
// из-за одного объекта с кривым адресом
func decodeLocation(raw []byte) domain.Location {
	if len(raw) == 0 || string(raw) == "null" {
		return domain.Location{}
	}

	var payload locationPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return domain.Location{}
	}

	return domain.Location{
		City:     payload.Address.City,
		State:    payload.Address.State,
		Country:  payload.Address.Country,
		CityIcon: payload.CityIcon,
	}
}
