package toml

import (
	"fmt"

	"github.com/bnema/attendance-cli/internal/domain"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int           `toml:"version"`
	Timezone string        `toml:"timezone,omitempty"`
	Shifts   []shiftSchema `toml:"shifts"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported schedule schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type shiftSchema struct {
	Key     string   `toml:"key"`
	Aliases []string `toml:"aliases,omitempty"`
	Start   string   `toml:"start"`
	End     string   `toml:"end"`
	Team    string   `toml:"team"`
}

func toSchema(entry domain.ShiftEntry) shiftSchema {
	return shiftSchema{
		Key:     entry.Shift.Key,
		Aliases: entry.Aliases,
		Start:   entry.Shift.Start.String(),
		End:     entry.Shift.End.String(),
		Team:    entry.Shift.Team,
	}
}

func fromSchema(index int, shift shiftSchema) (domain.ShiftEntry, error) {
	start, err := domain.ParseTimeOfDay(shift.Start)
	if err != nil {
		return domain.ShiftEntry{}, fmt.Errorf("shift %d (%s) start: %w", index, shift.Key, err)
	}
	end, err := domain.ParseTimeOfDay(shift.End)
	if err != nil {
		return domain.ShiftEntry{}, fmt.Errorf("shift %d (%s) end: %w", index, shift.Key, err)
	}

	return domain.ShiftEntry{
		Shift: domain.ShiftDefinition{
			Key:   shift.Key,
			Start: start,
			End:   end,
			Team:  shift.Team,
		},
		Aliases: shift.Aliases,
	}, nil
}
