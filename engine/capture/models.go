package capture

import "time"

// DatabaseModels lists every table the recorder migrates.
var DatabaseModels = []any{
	&CaptureSession{},
	&PoseSample{},
	&RootSample{},
}

// CaptureSession is one recording run.
type CaptureSession struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Preset    string    `json:"preset" gorm:"size:32"`
	Asset     string    `json:"asset" gorm:"size:255"`
	StartedAt time.Time `json:"startedAt"`
	Swimmers  int       `json:"swimmers"`

	// Frames counts the sampled frames; LastFrame is the scene frame of the latest one.
	Frames    uint64 `json:"frames"`
	LastFrame uint64 `json:"lastFrame"`
}

// PoseSample is one joint's driven rotation in one frame.
type PoseSample struct {
	ID        uint    `json:"-" gorm:"primaryKey"`
	SessionID string  `json:"sessionId" gorm:"size:36;index:idx_pose_session_swimmer"`
	SwimmerID string  `json:"swimmerId" gorm:"size:36;index:idx_pose_session_swimmer"`
	Frame     uint64  `json:"frame" gorm:"index:idx_pose_frame"`
	T         float64 `json:"t"`
	Joint     string  `json:"joint" gorm:"size:32"`
	Mask      uint8   `json:"mask"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
}

// RootSample is a swimmer root's local position in one frame.
type RootSample struct {
	ID        uint    `json:"-" gorm:"primaryKey"`
	SessionID string  `json:"sessionId" gorm:"size:36;index:idx_root_session_swimmer"`
	SwimmerID string  `json:"swimmerId" gorm:"size:36;index:idx_root_session_swimmer"`
	Frame     uint64  `json:"frame"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Z         float64 `json:"z"`
}
