package service

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"github.com/AlibekovAA/seraas-authentication/internal/common/validation"
	recorddomain "github.com/AlibekovAA/seraas-authentication/internal/record/domain"
)

func parseUserID(raw string) (string, error) {
	id, err := validation.ParseUUID(raw)
	if err != nil {
		return "", ErrInvalidUserID.WithCause(err)
	}
	return id, nil
}

func parseRecordID(raw string) (string, error) {
	id, err := validation.ParseUUID(raw)
	if err != nil {
		return "", ErrInvalidRecordID.WithCause(err)
	}
	return id, nil
}

// validateSendInput checks the payload in order: fileName, then output, then
// the optional fields. Text columns cannot hold NUL and the interval column
// is 32-bit.
func validateSendInput(in SendInput) error {
	if strings.TrimSpace(in.FileName) == "" {
		return ErrFileNameRequired
	}
	if strings.ContainsRune(in.FileName, 0) {
		return ErrFileNameInvalid
	}
	if isEmptyOutput(in.Output) {
		return ErrOutputRequired
	}
	for _, emotion := range in.EmotionsAvailable {
		if strings.ContainsRune(emotion, 0) {
			return ErrEmotionsInvalid
		}
	}
	if iv := in.PeriodicQueryInterval; iv != nil && (*iv < math.MinInt32 || *iv > math.MaxInt32) {
		return ErrQueryIntervalOutOfRange
	}
	return nil
}

// isEmptyOutput treats missing, malformed, null, "", [] and {} as no output.
func isEmptyOutput(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || !json.Valid(trimmed) {
		return true
	}

	var v any
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return true
	}

	switch value := v.(type) {
	case nil:
		return true
	case string:
		return value == ""
	case []any:
		return len(value) == 0
	case map[string]any:
		return len(value) == 0
	default:
		return false
	}
}

func applyDefaults(in SendInput) ([]string, int) {
	emotions := in.EmotionsAvailable
	if len(emotions) == 0 {
		emotions = recorddomain.DefaultEmotions()
	}

	interval := recorddomain.NotPeriodic
	if in.PeriodicQueryInterval != nil {
		interval = *in.PeriodicQueryInterval
	}
	return emotions, interval
}
