package api

// Part of speech tags accepted in the user dictionary.
const (
	PosGeneralNoun = "NNG"
	PosProperNoun  = "NNP"
	PosUnanalyzed  = "NA"
)

// PosDisplayName maps part of speech tags to their Korean names.
var PosDisplayName = map[string]string{
	PosGeneralNoun: "일반명사",
	PosProperNoun:  "고유명사",
	PosUnanalyzed:  "제외(불능)",
}

type UserDict struct {
	ID      int    `json:"id"`
	Keyword string `json:"keyword"`
	Pos     string `json:"pos"`
	PosName string `json:"posName,omitempty"`
}

type UpsertUserDictRequest struct {
	ID      int    `json:"-"`
	Keyword string `json:"keyword" validate:"required,max=100"`
	Pos     string `json:"pos" validate:"required,oneof=NNG NNP NA"`
}
