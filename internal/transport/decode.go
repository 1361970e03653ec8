package transport

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/ganot/procflow/internal/domain/process"
)

// Form fields arrive as flat text: money as digits, flags as "true"/"false",
// the location as a serialized JSON object. Everything is coerced to typed
// values here so the domain never sees wire strings.

func parseMoney(raw string) (float64, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid numeric value %q: %w", raw, err)
	}
	return v, nil
}

func parseFlag(raw string) (bool, error) {
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid flag value %q: %w", raw, err)
	}
	return v, nil
}

// decodeLocation decodes the serialized location. Malformed text is an
// explicit error, never a silently-empty location.
func decodeLocation(raw string) (process.Location, error) {
	var loc process.Location
	if err := json.Unmarshal([]byte(raw), &loc); err != nil {
		return process.Location{}, fmt.Errorf("invalid location %q: %w", raw, err)
	}
	return loc, nil
}

func createInputFromForm(form url.Values) (process.CreateInput, error) {
	input := process.CreateInput{
		Object:       form.Get("object"),
		Phase:        form.Get("phase"),
		ContractDate: form.Get("contractDate"),
	}

	var err error
	if input.EstimatedValue, err = parseMoney(form.Get("estimatedValue")); err != nil {
		return process.CreateInput{}, err
	}
	if input.ContractedValue, err = parseMoney(form.Get("contractedValue")); err != nil {
		return process.CreateInput{}, err
	}
	if raw := form.Get("location"); raw != "" {
		if input.Location, err = decodeLocation(raw); err != nil {
			return process.CreateInput{}, err
		}
	}
	return input, nil
}

// updateFromForm builds a partial update: only fields present in the form
// are set, so absent fields stay untouched on the record.
func updateFromForm(form url.Values) (process.Update, bool, error) {
	var upd process.Update

	if form.Has("object") {
		v := form.Get("object")
		upd.Object = &v
	}
	if form.Has("phase") {
		v := form.Get("phase")
		upd.Phase = &v
	}
	if form.Has("contractDate") {
		v := form.Get("contractDate")
		upd.ContractDate = &v
	}
	if form.Has("estimatedValue") {
		v, err := parseMoney(form.Get("estimatedValue"))
		if err != nil {
			return process.Update{}, false, err
		}
		upd.EstimatedValue = &v
	}
	if form.Has("contractedValue") {
		v, err := parseMoney(form.Get("contractedValue"))
		if err != nil {
			return process.Update{}, false, err
		}
		upd.ContractedValue = &v
	}
	if form.Has("location") {
		loc, err := decodeLocation(form.Get("location"))
		if err != nil {
			return process.Update{}, false, err
		}
		upd.Location = &loc
	}

	logHistory, err := parseFlag(form.Get("logHistory"))
	if err != nil {
		return process.Update{}, false, err
	}
	return upd, logHistory, nil
}
