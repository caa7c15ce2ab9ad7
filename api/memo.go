package api

// Memo is the JSON shape of a memo, shared by the HTTP API and exports.
type Memo struct {
	ID int `json:"id"`

	// Standard fields
	Timestamp int64  `json:"timestamp"`
	RegDate   int64  `json:"regDate"`
	RegDt     string `json:"regDt"`
	RegTm     string `json:"regTm"`
	Status    string `json:"status"`
	DeletedAt int64  `json:"deleted_at"`

	// Domain specific fields
	Category     string   `json:"category"`
	Title        string   `json:"title"`
	Meaning      string   `json:"meaning"`
	URL          string   `json:"url"`
	Lat          *float64 `json:"lat"`
	Lon          *float64 `json:"lon"`
	Address      string   `json:"address"`
	Sido         string   `json:"sido"`
	Sigungu      string   `json:"sigungu"`
	Eupmyeondong string   `json:"eupmyeondong"`

	// Composed fields
	Keywords []string `json:"keywords,omitempty"`
}

type CreateMemoRequest struct {
	Category     string   `json:"category" validate:"max=64"`
	Title        string   `json:"title" validate:"max=1000"`
	Meaning      string   `json:"meaning" validate:"max=10000"`
	RegDate      int64    `json:"regDate" validate:"gte=0"`
	URL          string   `json:"url" validate:"omitempty,url"`
	Lat          *float64 `json:"lat" validate:"omitempty,latitude"`
	Lon          *float64 `json:"lon" validate:"omitempty,longitude"`
	Address      string   `json:"address"`
	Sido         string   `json:"sido"`
	Sigungu      string   `json:"sigungu"`
	Eupmyeondong string   `json:"eupmyeondong"`
}

type PatchMemoRequest struct {
	ID int `json:"-"`

	RegDate      *int64   `json:"regDate" validate:"omitempty,gte=0"`
	Category     *string  `json:"category" validate:"omitempty,max=64"`
	Title        *string  `json:"title" validate:"omitempty,max=1000"`
	Meaning      *string  `json:"meaning" validate:"omitempty,max=10000"`
	URL          *string  `json:"url" validate:"omitempty,url"`
	Lat          *float64 `json:"lat" validate:"omitempty,latitude"`
	Lon          *float64 `json:"lon" validate:"omitempty,longitude"`
	Address      *string  `json:"address"`
	Sido         *string  `json:"sido"`
	Sigungu      *string  `json:"sigungu"`
	Eupmyeondong *string  `json:"eupmyeondong"`
}

// DefaultPageSize is the memo list page size.
const DefaultPageSize = 20
