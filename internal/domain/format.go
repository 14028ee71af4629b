package domain

import (
	"fmt"
	"strings"
)

const (
	// blockSeparator joins rendered alert and forecast blocks.
	blockSeparator = "\n---\n"

	// maxForecastPeriods caps forecast output at the next five periods,
	// roughly two and a half days of day/night entries.
	maxForecastPeriods = 5

	unknownPlaceholder        = "Unknown"
	noInstructionsPlaceholder = "No specific instructions provided"
)

// FormatAlerts renders alert features as human-readable text blocks joined by
// a separator line. Missing fields degrade to placeholder text rather than
// failing.
func FormatAlerts(features []AlertFeature) string {
	blocks := make([]string, len(features))
	for i, f := range features {
		blocks[i] = fmt.Sprintf(
			"Event: %s\nArea: %s\nSeverity: %s\nDescription: %s\nInstructions: %s",
			orUnknown(f.Event),
			orUnknown(f.AreaDesc),
			orUnknown(f.Severity),
			orUnknown(f.Description),
			orDefault(f.Instruction, noInstructionsPlaceholder),
		)
	}
	return strings.Join(blocks, blockSeparator)
}

// FormatForecast renders the first five forecast periods, in upstream order,
// as human-readable text blocks joined by a separator line.
func FormatForecast(periods []ForecastPeriod) string {
	if len(periods) > maxForecastPeriods {
		periods = periods[:maxForecastPeriods]
	}
	blocks := make([]string, len(periods))
	for i, p := range periods {
		blocks[i] = fmt.Sprintf(
			"%s:\nTemperature: %d°%s\nWind: %s %s\nForecast: %s",
			p.Name,
			p.Temperature,
			p.TemperatureUnit,
			p.WindSpeed,
			p.WindDirection,
			p.DetailedForecast,
		)
	}
	return strings.Join(blocks, blockSeparator)
}

func orUnknown(s string) string {
	return orDefault(s, unknownPlaceholder)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
