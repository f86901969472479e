package environment

// Checks carries the client-side probe results for the candidate's setup.
type Checks struct {
	CameraAccess      bool    `json:"camera_access" mapstructure:"camera_access"`
	MicrophoneAccess  bool    `json:"microphone_access" mapstructure:"microphone_access"`
	SingleScreen      bool    `json:"single_screen" mapstructure:"single_screen"`
	FullscreenSupport bool    `json:"fullscreen_support" mapstructure:"fullscreen_support"`
	BrowserCompatible bool    `json:"browser_compatible" mapstructure:"browser_compatible"`
	NetworkSpeedMbps  float64 `json:"network_speed_mbps" mapstructure:"network_speed_mbps"`
}

type Result struct {
	Valid    bool            `json:"valid"`
	Checks   map[string]bool `json:"checks"`
	Warnings []string        `json:"warnings"`
	Blockers []string        `json:"blockers"`
}

// MinNetworkSpeedMbps is the slowest connection that can sustain the
// proctored video stream.
const MinNetworkSpeedMbps = 1.0

//go:generate mockery --name=Validator --dir=. --output=../../../mocks --filename=environment_validator_mock.go --case=underscore --with-expecter
type Validator interface {
	Validate(checks Checks) Result
}

type validator struct{}

func NewValidator() Validator {
	return &validator{}
}

// Validate classifies every check as either a blocker or a warning. Camera,
// microphone, browser and network are blockers; multiple screens and missing
// fullscreen support only warn. It never fails: any input yields a result.
func (v *validator) Validate(checks Checks) Result {
	result := Result{
		Checks:   make(map[string]bool),
		Warnings: make([]string, 0),
		Blockers: make([]string, 0),
	}

	result.Checks["camera_access"] = checks.CameraAccess
	if !checks.CameraAccess {
		result.Blockers = append(result.Blockers, "Camera access is required for a proctored interview")
	}

	result.Checks["microphone_access"] = checks.MicrophoneAccess
	if !checks.MicrophoneAccess {
		result.Blockers = append(result.Blockers, "Microphone access is required for a proctored interview")
	}

	result.Checks["browser_compatible"] = checks.BrowserCompatible
	if !checks.BrowserCompatible {
		result.Blockers = append(result.Blockers, "The browser is not compatible, please use a supported browser")
	}

	networkOK := checks.NetworkSpeedMbps >= MinNetworkSpeedMbps
	result.Checks["network_speed"] = networkOK
	if !networkOK {
		result.Blockers = append(result.Blockers, "A network connection of at least 1 Mbps is required")
	}

	result.Checks["single_screen"] = checks.SingleScreen
	if !checks.SingleScreen {
		result.Warnings = append(result.Warnings, "Multiple screens detected, please disconnect additional displays")
	}

	result.Checks["fullscreen_support"] = checks.FullscreenSupport
	if !checks.FullscreenSupport {
		result.Warnings = append(result.Warnings, "Fullscreen mode is not supported, fullscreen violations cannot be tracked")
	}

	result.Valid = len(result.Blockers) == 0
	return result
}
