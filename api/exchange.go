package api

// ExportData is the document written by export and read by import.
type ExportData struct {
	Memos          []*Memo     `json:"memos"`
	UserDictionary []*UserDict `json:"userDictionary"`
}

type ImportResult struct {
	MemosImported int `json:"memosImported"`
	DictImported  int `json:"dictImported"`
	DictSkipped   int `json:"dictSkipped"`
}

type ExportUploadResponse struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
	URL    string `json:"url"`
}
