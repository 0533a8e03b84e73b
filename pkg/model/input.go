package model

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
)

// rawWeeks mirrors the three-shape weeks object: {mode:"all"},
// {mode:"list", values:[int]} or {mode:"ranges", values:["a-b", ...]}.
// Values is decoded loosely because its element type depends on Mode.
type rawWeeks struct {
	Mode   string `mapstructure:"mode"`
	Values []any  `mapstructure:"values"`
}

type rawAudience struct {
	Type     string   `mapstructure:"type"`
	GroupIDs []string `mapstructure:"group_ids"`
}

type rawEvent struct {
	ID           string      `mapstructure:"id"`
	TeacherID    string      `mapstructure:"teacher_id"`
	DurationMin  int         `mapstructure:"duration_min"`
	Audience     rawAudience `mapstructure:"audience"`
	AllowedSlots []string    `mapstructure:"allowed_slots"`
	Weeks        *rawWeeks   `mapstructure:"weeks"`
}

type rawModule struct {
	ID              string     `mapstructure:"id"`
	HoursPerWeek    *int       `mapstructure:"hours_per_week"`
	MinRoomCapacity *int       `mapstructure:"min_room_capacity"`
	Weeks           *rawWeeks  `mapstructure:"weeks"`
	Events          []rawEvent `mapstructure:"events"`
}

type rawGroup struct {
	ID        string   `mapstructure:"id"`
	Size      int      `mapstructure:"size"`
	Available []string `mapstructure:"available"`
}

type rawSession struct {
	ID      string      `mapstructure:"id"`
	Groups  []rawGroup  `mapstructure:"groups"`
	Modules []rawModule `mapstructure:"modules"`
}

type rawTimeslot struct {
	ID          string `mapstructure:"id"`
	Day         string `mapstructure:"day"`
	Start       string `mapstructure:"start"`
	End         string `mapstructure:"end"`
	DurationMin int    `mapstructure:"duration_min"`
}

type rawRoom struct {
	ID        string   `mapstructure:"id"`
	Capacity  int      `mapstructure:"capacity"`
	Available []string `mapstructure:"available"`
}

type rawTeacher struct {
	ID        string   `mapstructure:"id"`
	Available []string `mapstructure:"available"`
}

type rawConfig struct {
	WeekName   string `mapstructure:"week_name"`
	WeeksTotal *int   `mapstructure:"weeks_total"`
	Strategy   string `mapstructure:"strategy"`
	UseMRV     *bool  `mapstructure:"use_mrv"`
}

type rawProblem struct {
	Config    rawConfig     `mapstructure:"config"`
	Timeslots []rawTimeslot `mapstructure:"timeslots"`
	Rooms     []rawRoom     `mapstructure:"rooms"`
	Teachers  []rawTeacher  `mapstructure:"teachers"`
	Sessions  []rawSession  `mapstructure:"sessions"`
}

// Load reads a problem document from file, decodes it and validates it,
// returning the immutable, resolved Problem. A loose decode pass is kept
// separate from the validation pass so malformed JSON and invalid-but-
// well-formed documents fail with distinct error types.
func Load(path string) (*Problem, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, InputMalformedError{Detail: err.Error()}
	}
	return Parse(bytes)
}

// Parse decodes and validates a problem document already read into memory.
func Parse(document []byte) (*Problem, error) {
	var untyped map[string]any
	if err := json.Unmarshal(document, &untyped); err != nil {
		return nil, InputMalformedError{Detail: err.Error()}
	}

	var raw rawProblem
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &raw,
		ErrorUnused:      false,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("model: cannot build decoder: %w", err)
	}
	if err := decoder.Decode(untyped); err != nil {
		return nil, InputMalformedError{Detail: err.Error()}
	}

	return validate(raw)
}
