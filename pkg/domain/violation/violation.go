package violation

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrInvalidType     = errors.New("invalid violation type")
	ErrInvalidSeverity = errors.New("invalid severity, must be 'low', 'medium', 'high' or 'critical'")
	ErrInvalidMetadata = errors.New("metadata values must be scalar (string, number or bool)")
	ErrMissingUserID   = errors.New("user_id is required")
)

// Type identifies what the client-side detector observed. The set is closed;
// anything outside it is rejected before any state is touched.
type Type string

const (
	TypeTabSwitch          Type = "tab_switch"
	TypeWindowFocusLost    Type = "window_focus_lost"
	TypeFullscreenExit     Type = "fullscreen_exit"
	TypeMultipleFaces      Type = "multiple_faces"
	TypeFaceNotDetected    Type = "face_not_detected"
	TypeSuspiciousActivity Type = "suspicious_activity"
	TypeBrowserDevTools    Type = "browser_dev_tools"
	TypeScreenshotAttempt  Type = "screenshot_attempt"
	TypeExternalDevice     Type = "external_device"
)

var knownTypes = map[Type]struct{}{
	TypeTabSwitch:          {},
	TypeWindowFocusLost:    {},
	TypeFullscreenExit:     {},
	TypeMultipleFaces:      {},
	TypeFaceNotDetected:    {},
	TypeSuspiciousActivity: {},
	TypeBrowserDevTools:    {},
	TypeScreenshotAttempt:  {},
	TypeExternalDevice:     {},
}

func ParseType(s string) (Type, error) {
	t := Type(s)
	if _, ok := knownTypes[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidType, s)
	}
	return t, nil
}

func Types() []Type {
	return []Type{
		TypeTabSwitch,
		TypeWindowFocusLost,
		TypeFullscreenExit,
		TypeMultipleFaces,
		TypeFaceNotDetected,
		TypeSuspiciousActivity,
		TypeBrowserDevTools,
		TypeScreenshotAttempt,
		TypeExternalDevice,
	}
}

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

func ParseSeverity(s string) (Severity, error) {
	switch sev := Severity(s); sev {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return sev, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSeverity, s)
	}
}

// Metadata is the opaque key-value bag attached by the client-side detector.
// Values are restricted to scalars so the stored contract stays explicit.
type Metadata map[string]interface{}

func (m Metadata) Validate() error {
	for key, value := range m {
		switch value.(type) {
		case nil, string, bool, float64, int, int64:
		default:
			return fmt.Errorf("%w: key %q", ErrInvalidMetadata, key)
		}
	}
	return nil
}

func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *Metadata) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	data, ok := value.([]byte)
	if !ok {
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("failed to scan metadata: unexpected type %T", value)
		}
		data = []byte(str)
	}
	return json.Unmarshal(data, m)
}

// Event is one recorded proctoring violation. Events are append-only; once
// stored they are never updated.
type Event struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	SessionID     uuid.UUID `json:"session_id" gorm:"type:uuid;index"`
	UserID        string    `json:"user_id"`
	ViolationType Type      `json:"violation_type" gorm:"index"`
	Severity      Severity  `json:"severity"`
	Description   string    `json:"description"`
	Metadata      Metadata  `json:"metadata,omitempty" gorm:"type:jsonb"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewEvent(
	sessionID uuid.UUID,
	userID string,
	violationType Type,
	severity Severity,
	description string,
	metadata Metadata,
) (*Event, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}
	if _, ok := knownTypes[violationType]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidType, violationType)
	}
	if _, err := ParseSeverity(string(severity)); err != nil {
		return nil, err
	}
	if err := metadata.Validate(); err != nil {
		return nil, err
	}
	return &Event{
		ID:            uuid.New(),
		SessionID:     sessionID,
		UserID:        userID,
		ViolationType: violationType,
		Severity:      severity,
		Description:   description,
		Metadata:      metadata,
		CreatedAt:     time.Now(),
	}, nil
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func (e *Event) TableName() string {
	return "public.violation_events"
}
