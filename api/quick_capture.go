package api

// QuickCaptureAction selects how the captured text is turned into a memo title.
type QuickCaptureAction string

const (
	// QuickCaptureMemo stores the text as is.
	QuickCaptureMemo QuickCaptureAction = "memo"
	// QuickCaptureTime appends the capture time.
	QuickCaptureTime QuickCaptureAction = "time"
	// QuickCapturePos appends a location marker.
	QuickCapturePos QuickCaptureAction = "pos"
)

type QuickCaptureRequest struct {
	Action QuickCaptureAction `json:"action" validate:"required,oneof=memo time pos"`
	Text   string             `json:"text" validate:"max=1000"`
	Lat    *float64           `json:"lat" validate:"omitempty,latitude"`
	Lon    *float64           `json:"lon" validate:"omitempty,longitude"`
}
